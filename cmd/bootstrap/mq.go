package bootstrap

import (
	"context"

	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/mq"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		fx.Annotate(
			NewPublisher,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*mq.Publisher, error) {
	publisher, cleanup, err := mq.NewPublisher(cfg.MQ)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return publisher, nil
}
