package bootstrap

import (
	"kitchenhub/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	CronModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
