package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/staynest/mono-repo/backend/shared/go-utils"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/app"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/migrations"
)

const migrateTimeout = 2 * time.Minute

func main() {
	rootCmd := &cobra.Command{
		Use:           "marketplace-service",
		Short:         "Staynest marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := serveCmd()
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())

	rootCmd.AddCommand(serve, migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and connects everything a command needs.
func bootstrap() (*config.Config, *app.App, error) {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		cfg.Close()
		return nil, nil, fmt.Errorf("failed to initialize %s: %w", config.AppName, err)
	}
	return cfg, application, nil
}

func serveCmd() *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, application, err := bootstrap()
			if err != nil {
				return err
			}
			defer cfg.Close()
			defer application.Close()

			if !skipMigrations {
				if err := runMigrations(application); err != nil {
					return err
				}
			}

			if cfg.LDFlag_SeedDbWithTestData {
				if err := app.SeedAllTestData(context.Background(), application.Store); err != nil {
					utils.Logger.WithError(err).Fatal("Failed to seed test data")
				}
				utils.Logger.Info("Seeded test data successfully")
			}

			handler := app.NewHandler(cfg, application.Store, application.DB, application.Photos)

			utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
			if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
				return fmt.Errorf("%s failed to start: %w", cfg.AppName, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending schema migrations on start")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, application, err := bootstrap()
			if err != nil {
				return err
			}
			defer cfg.Close()
			defer application.Close()
			return runMigrations(application)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo stays",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, application, err := bootstrap()
			if err != nil {
				return err
			}
			defer cfg.Close()
			defer application.Close()

			if err := app.SeedAllTestData(cmd.Context(), application.Store); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			utils.Logger.Info("Seeded test data successfully")
			return nil
		},
	}
}

func runMigrations(application *app.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	applied, err := migrations.Apply(ctx, application.DB)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	utils.Logger.Infof("Schema up to date; applied %d migration(s)", applied)
	return nil
}
