// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup applies the configured operation timeouts before any handler runs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	applyTimeouts(appCfg.Timeouts)
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long),
		zap.Duration("batch", cur.Batch))
	return nil
}

// applyTimeouts keeps the ping timeout at its default; zero values leave
// the other classes unchanged.
func applyTimeouts(t TimeoutConfig) {
	timeouts.Configure(timeouts.Config{
		Short:  t.Short,
		Medium: t.Medium,
		Long:   t.Long,
		Batch:  t.Batch,
	})
}
