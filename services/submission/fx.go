package submission

import "go.uber.org/fx"

var Module = fx.Module("submission.module",
	fx.Provide(NewService),
)
