package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the event sink chosen by configuration.
var Module = fx.Options(
	fx.Provide(NewSink),
	fx.Invoke(registerLifecycle),
)

// NewSink returns a Kafka sink when brokers are configured and a log sink otherwise.
func NewSink(cfg *config.Config, logger *slog.Logger) Sink {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, order events will be logged")
		return NewLogSink(logger)
	}
	return NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
}

func registerLifecycle(lc fx.Lifecycle, sink Sink) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return sink.Close()
		},
	})
}
