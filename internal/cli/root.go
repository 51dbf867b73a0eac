// README: porter-api command tree (serve, migrate, seed-gazetteer, seed-pricing).
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"porter/internal/config"
	"porter/internal/infra"
)

// env is what every subcommand needs before it can do anything.
type env struct {
	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	var e env
	root := &cobra.Command{
		Use:           "porter-api",
		Short:         "Airport luggage pickup and delivery API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := infra.NewLogger(cfg.Production())
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			e.cfg, e.log = cfg, log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}
	root.AddCommand(
		newServeCmd(&e),
		newMigrateCmd(&e),
		newSeedGazetteerCmd(&e),
		newSeedPricingCmd(&e),
	)
	return root
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
