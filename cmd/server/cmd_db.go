package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/grocery/internal/config"
	"github.com/example/grocery/internal/database"
	"github.com/example/grocery/internal/logger"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/services"
)

type environment struct {
	cfg   *config.Config
	log   *slog.Logger
	store *repository.Store
}

func (e *environment) close() {
	if err := e.store.Close(context.Background()); err != nil {
		e.log.Warn("close store", "error", err)
	}
}

// boot loads config, builds the logger and opens the configured store.
func boot(ctx context.Context, migrate bool) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.IsProduction())

	store, err := database.Open(ctx, cfg.DatabaseURL, cfg.MongoDatabase, migrate, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &environment{cfg: cfg, log: log, store: store}, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema (indexes for MongoDB)",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := boot(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer env.close()
		env.log.Info("migrations complete")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter catalog and the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := boot(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer env.close()

		catalog := services.NewCatalogService(env.store.Products, env.store.Categories, env.log)
		res, err := services.NewSeeder(env.store, catalog, env.log).Seed(cmd.Context(), env.cfg.AdminEmail, env.cfg.AdminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d products, admin created: %t\n", res.Categories, res.Products, res.Admin)
		return nil
	},
}

var recountCmd = &cobra.Command{
	Use:   "recount-categories",
	Short: "Recompute category product counts from active products",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := boot(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.close()

		catalog := services.NewCatalogService(env.store.Products, env.store.Categories, env.log)
		changed, err := catalog.RecountCategories(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %d categories\n", changed)
		return nil
	},
}
