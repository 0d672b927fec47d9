package bootstrap

import (
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/middleware"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTService,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
