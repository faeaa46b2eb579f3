package leaderboard

import "go.uber.org/fx"

var Module = fx.Module("leaderboard.module",
	fx.Provide(NewService),
)
