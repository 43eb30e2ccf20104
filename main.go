package main

import (
	"Cruder/database"
	"Cruder/internal/config"
	"Cruder/internal/models"
	"Cruder/internal/server"
	"Cruder/internal/services"
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "cruder",
		Short:        "CRUD endpoints over gorm models",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "cruder.yaml", "path to the configuration file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(configPath)
			},
		},
	)
	return root
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfiguration(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	srv, cleanup, err := InitializeServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	defer cleanup()

	if err := srv.Janitor.StartCleanCycle(); err != nil {
		return err
	}
	defer srv.Janitor.StopClean()

	app := server.NewApp(srv, cfg)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			srv.LogService.Log.WithError(err).Error("Failed to shut down server")
		}
	}()

	srv.LogService.Log.WithField("port", cfg.Server.Port).Info("Starting server")
	return app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
}

func migrate(configPath string) error {
	cfg, err := config.LoadConfiguration(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logService, err := services.NewLogService(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	cfg.Database.AutoMigrate = false
	db, err := database.SetupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}
	defer database.CloseDatabase(db)

	if err := database.Migrate(db); err != nil {
		logService.Log.WithError(err).Error("Migration failed")
		return err
	}
	logService.Log.WithFields(logrus.Fields{
		"driver": cfg.Database.Driver,
		"models": len(models.All()),
	}).Info("Migrated database")
	return nil
}
