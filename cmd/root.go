package cmd

import (
	"context"
	"fmt"
	"os"

	"clubops/pkg/database"
	"clubops/pkg/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:           "clubops",
	Short:         "Club operations API: dancers, DJ queues, VIP rooms and money",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("port", "", "HTTP port (overrides PORT)")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging, relaxed JWT secret (overrides DEBUG)")

	_ = v.BindPFlag("PORT", rootCmd.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("DEBUG", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	rootCmd.RunE = serveCmd.RunE
}

// Execute runs the CLI; without a subcommand it serves.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clubops: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger every command uses.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(v)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clubops: init logger: %v, falling back to production logger\n", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

func connect(ctx context.Context, config *utils.Config, logger *zap.Logger) (database.PgxIface, error) {
	db, err := database.InitDB(ctx, config.Database, logger, config.App.Debug)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected",
		zap.String("host", config.Database.Host),
		zap.String("name", config.Database.Name))
	return db, nil
}
