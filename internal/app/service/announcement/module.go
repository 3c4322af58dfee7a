package announcement

import "go.uber.org/fx"

// Module exposes the announcement service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
