// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background goroutines, then closes the document store.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Background != nil {
		if err := deps.Background.Stop(ctx); err != nil {
			logger.Warn("background goroutines did not stop", zap.Error(err))
		}
	}
	if deps.Docs == nil {
		return nil
	}
	logger.Info("closing document store", zap.String("backend", deps.Backend))
	if err := deps.Docs.Close(ctx); err != nil {
		logger.Error("document store close failed", zap.Error(err))
		return err
	}
	return nil
}
