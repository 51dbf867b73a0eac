package cli

import (
	"github.com/spf13/cobra"

	"porter/internal/infra"
)

func newMigrateCmd(e *env) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(*cobra.Command, []string) error {
			return infra.Migrate(e.cfg.DB.DSN, dir, e.log)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory containing the migration files")
	return cmd
}
