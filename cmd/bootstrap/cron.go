package bootstrap

import (
	"context"
	"log/slog"

	"kitchenhub/internal/pkg/config"
	"kitchenhub/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var CronModule = fx.Module("cron",
	fx.Invoke(StartOverstaySweep),
)

// StartOverstaySweep schedules the nightly overstay detection job. The sweep
// only records candidates; charging stays behind the manager approval API.
func StartOverstaySweep(lc fx.Lifecycle, cfg config.Config, overstays commands.OverstayCommands, logger *slog.Logger) error {
	c := cron.New()

	_, err := c.AddFunc(cfg.Booking.OverstaySweepSpec, func() {
		ctx := context.Background()
		detected, err := overstays.DetectOverstays(ctx)
		if err != nil {
			logger.Error("overstay sweep failed", "error", err)
			return
		}
		logger.Info("overstay sweep completed", "detected", len(detected))
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c.Start()
			logger.Info("overstay sweep scheduled", "spec", cfg.Booking.OverstaySweepSpec)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}
