package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iliyamo/localrot/internal/config"
	"github.com/iliyamo/localrot/internal/handler"
	"github.com/iliyamo/localrot/internal/queue"
	"github.com/iliyamo/localrot/internal/repository"
	"github.com/iliyamo/localrot/internal/router"
	"github.com/iliyamo/localrot/internal/service"
)

var cfg config.Config

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:   "localrot",
		Short: "Game rental reservation backend",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// a missing .env is fine; the process environment still applies
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			cfg = config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			config.SetupLogging(cfg)
			return nil
		},
		RunE:         func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
	})
	root.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print the admin stats from the configured store as JSON",
		RunE:  func(cmd *cobra.Command, args []string) error { return printStats(cmd.Context()) },
	})
	return root
}

func openStores(ctx context.Context) (*repository.Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return repository.OpenMySQLStores(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	default:
		return repository.OpenFileStores(cfg.DataDir)
	}
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openStores(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.WithError(err).Warn("close store")
		}
	}()

	var pub service.EventPublisher = service.NoopPublisher{}
	if cfg.RabbitEnabled {
		pub = service.AMQPPublisher{URL: cfg.RabbitURL}
		go func() {
			if err := queue.StartConfirmationConsumer(ctx, cfg.RabbitURL, cfg.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("reservation consumer stopped")
			}
		}()
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	auth := service.NewAuthService(stores.Users, service.AuthOptions{
		PasswordScheme: cfg.PasswordScheme,
		BcryptCost:     cfg.BcryptCost,
		JWTSecret:      cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
	})
	reservations := service.NewReservationService(stores.Reservations, pub)
	payments := service.NewPaymentService(stores.Payments, reservations)

	e := router.New(router.Handlers{
		Auth:         handler.NewAuthHandler(auth),
		Reservations: handler.NewReservationHandler(reservations),
		Payments:     handler.NewPaymentHandler(payments),
		Admin:        handler.NewAdminHandler(service.NewStatsService(stores)),
	}, router.Options{
		JWTSecret: cfg.JWTSecret,
		PublicDir: cfg.PublicDir,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Redis:     rdb,
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":  cfg.Addr(),
			"env":   cfg.Env,
			"store": cfg.StoreDriver,
		}).Info("localrot listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func printStats(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	stores, err := openStores(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = stores.Close() }()

	st, err := service.NewStatsService(stores).Stats(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}
