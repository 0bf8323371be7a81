package main

import (
	"context"
	"fmt"

	"github.com/medisow/medisowadmin/internal/app/bootstrap"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// backfillTargets maps each argument to the store backfill it runs.
var backfillTargets = []struct {
	name string
	run  func(context.Context, *bootstrap.Services) (int, error)
}{
	{"medicines", func(ctx context.Context, s *bootstrap.Services) (int, error) { return s.Medicines.Backfill(ctx) }},
	{"prescriptions", func(ctx context.Context, s *bootstrap.Services) (int, error) { return s.Prescriptions.Backfill(ctx) }},
	{"labReports", func(ctx context.Context, s *bootstrap.Services) (int, error) { return s.LabReports.Backfill(ctx) }},
}

func backfillNames(arg string) ([]string, error) {
	if arg == "all" {
		names := make([]string, 0, len(backfillTargets))
		for _, t := range backfillTargets {
			names = append(names, t.name)
		}
		return names, nil
	}
	for _, t := range backfillTargets {
		if t.name == arg {
			return []string{arg}, nil
		}
	}
	return nil, fmt.Errorf("unknown backfill target %q (want medicines, prescriptions, labReports or all)", arg)
}

func backfillCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill [medicines|prescriptions|labReports|all]",
		Short: "Write category and sub-category names onto stored items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := backfillNames(args[0])
			if err != nil {
				return err
			}
			return withStores(cmd.Context(), *configFile, func(ctx context.Context, svc *bootstrap.Services, logger *zap.Logger) error {
				for _, t := range backfillTargets {
					if !contains(names, t.name) {
						continue
					}
					runCtx, cancel := timeouts.WithTimeout(ctx, timeouts.ClassBatch, logger, "backfill "+t.name)
					n, err := t.run(runCtx, svc)
					cancel()
					if err != nil {
						return fmt.Errorf("backfill %s: %w", t.name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d updated\n", t.name, n)
				}
				return nil
			})
		},
	}
}

func voucherCodeCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "voucher-code",
		Short: "Print random voucher codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("-n must be at least 1")
			}
			for i := 0; i < n; i++ {
				code, err := voucherstore.GenerateCode()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of codes")
	return cmd
}

func ensureSchemaCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-schema",
		Short: "Reconcile MongoDB indexes and validators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			appCfg, err := loadAppConfig(*configFile)
			if err != nil {
				return err
			}
			if err := bootstrap.Validate(appCfg, logger); err != nil {
				return err
			}
			deps, err := bootstrap.OpenDocStore(cmd.Context(), appCfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Docs.Close(context.Background()) }()
			if deps.MongoDatabase == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "bolt backend has no schema to ensure")
				return nil
			}
			return bootstrap.EnsureSchema(cmd.Context(), nil, appCfg, deps, logger)
		},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
