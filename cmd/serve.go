package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ray-remotestate/bistro/config"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/database/dbhelper"
	"github.com/ray-remotestate/bistro/database/memstore"
	"github.com/ray-remotestate/bistro/database/mongostore"
	"github.com/ray-remotestate/bistro/handlers"
	"github.com/ray-remotestate/bistro/payment"
	"github.com/ray-remotestate/bistro/server"
	"github.com/ray-remotestate/bistro/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const connectTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	store, err := openStore(ctx, cfg.Database)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Error("failed to close database connection!")
		}
	}()
	logrus.Infof("connected to %s store", cfg.Database.Driver)

	var creator payment.IntentCreator
	if cfg.Stripe.SecretKey != "" {
		creator = payment.NewStripeClient(cfg.Stripe.SecretKey)
	} else {
		logrus.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	h := handlers.New(
		store,
		utils.NewTokenCodec(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		payment.NewService(creator, cfg.Stripe.Currency),
		cfg.Auth.CookieSecure,
	)
	srv := server.SetupRoutes(h, cfg.CORSOrigins)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("server listening on %s", cfg.Addr())
		if err := srv.Run(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("run server: %w", err)
	case <-done:
	}

	logrus.Info("shutting down...")
	if err := srv.Shutdown(cfg.ShutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to gracefully shutdown server")
	}
	logrus.Info("system is shut ..zzz")
	return nil
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (database.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMemory:
		return memstore.New(), nil
	default:
		connect := database.Connect
		if cfg.AutoMigrate {
			connect = database.ConnectAndMigrate
		}
		db, err := connect(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return dbhelper.New(db), nil
	}
}
