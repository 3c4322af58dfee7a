package trainer

import "go.uber.org/fx"

// Module exposes the trainer service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
