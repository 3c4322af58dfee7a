package branch

import "go.uber.org/fx"

// Module exposes the branch service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
