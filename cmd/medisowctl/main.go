// Command medisowctl runs maintenance tasks against the Medisow admin
// document store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/medisow/medisowadmin/internal/app/bootstrap"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:          "medisowctl",
		Short:        "Medisow admin maintenance commands",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")

	root.AddCommand(backfillCmd(&configFile), voucherCodeCmd(), ensureSchemaCmd(&configFile))
	return root
}

// withStores opens the document store from config, runs fn and closes it.
func withStores(ctx context.Context, configFile string, fn func(context.Context, *bootstrap.Services, *zap.Logger) error) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	appCfg, err := loadAppConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := bootstrap.Validate(appCfg, logger); err != nil {
		return err
	}
	timeouts.Configure(timeouts.Config{Batch: appCfg.Timeouts.Batch})

	deps, err := bootstrap.OpenDocStore(ctx, appCfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Docs.Close(context.Background()) }()

	// Maintenance never uploads images or sends pushes.
	svc := bootstrap.NewStores(deps.Docs, nil, nil, appCfg, logger)
	return fn(ctx, svc, logger)
}
