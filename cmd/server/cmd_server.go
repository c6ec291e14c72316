package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/grocery/internal/events"
	"github.com/example/grocery/internal/routes"
	"github.com/example/grocery/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := boot(ctx, true)
	if err != nil {
		return err
	}
	defer env.close()

	cfg, log := env.cfg, env.log

	// Without ADMIN_PASSWORD the demo catalog is loaded but no admin account is created.
	if cfg.DemoMode {
		catalog := services.NewCatalogService(env.store.Products, env.store.Categories, log)
		if _, err := services.NewSeeder(env.store, catalog, log).Seed(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Warn("event publishing disabled", "error", err)
		} else {
			publisher = amqpPub
			defer amqpPub.Close()
		}
	}

	var provider services.CheckoutProvider
	if cfg.PaymentsEnabled() {
		provider = services.NewStripeProvider(cfg.StripeSecretKey)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout endpoints are disabled")
	}

	app := routes.NewApp(routes.Dependencies{
		Store:     env.store,
		Config:    cfg,
		Provider:  provider,
		Events:    publisher,
		Log:       log,
		AccessLog: true,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.AppPort, "env", cfg.AppEnv)
		errc <- app.Listen(":" + cfg.AppPort)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("fiber.Listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
