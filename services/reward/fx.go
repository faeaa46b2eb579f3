package reward

import "go.uber.org/fx"

var Module = fx.Module("reward.module",
	fx.Provide(NewService),
)
