package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/internal/infra/db"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := dbs.NewPool(cmd.Context(), dbs.NewConfig())
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := db.Migrate(cmd.Context(), pool)
		if err != nil {
			return fmt.Errorf("err applying migrations, %w", err)
		}
		slog.Info("migrations applied", "count", applied)
		return nil
	},
}
