package cmd

import (
	"clubops/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := connect(cmd.Context(), config, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := database.Migrate(cmd.Context(), db, logger)
		if err != nil {
			logger.Error("Migration failed", zap.Int("applied", applied), zap.Error(err))
			return err
		}

		logger.Info("Migrations complete", zap.Int("applied", applied))
		return nil
	},
}
