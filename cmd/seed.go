package cmd

import (
	"time"

	"clubops/internal/data/repository"
	"clubops/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a sample club into an empty database",
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

		repo := repository.NewRepository(db, logger)
		if _, err := seed.Run(cmd.Context(), repo, time.Now().UTC(), logger); err != nil {
			logger.Error("Seed failed", zap.Error(err))
			return err
		}
		return nil
	},
}
