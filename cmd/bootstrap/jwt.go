package bootstrap

import (
	"kitchenhub/internal/handler/middleware"
	"kitchenhub/internal/pkg/config"
	"kitchenhub/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTValidator,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTValidator(cfg config.Config) *jwt.Validator {
	return jwt.NewValidator(cfg.JWT)
}
