package main

import (
	"SMCHealth/cache"
	"SMCHealth/config"
	"SMCHealth/database"
	"SMCHealth/events"
	"SMCHealth/notifier"
	"SMCHealth/routes"
	"SMCHealth/utils"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			return runServer(cfg, log)
		},
	}
}

func runServer(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the database
	db, err := database.InitDB(ctx, cfg.DBURL, cfg.Env, log)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	if cfg.IsDev() {
		if err := database.RunMigrations(ctx, db); err != nil {
			return err
		}
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(ctx, database.DefaultRedisConfig(cfg.RedisURL), log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	redisCache, err := cache.NewCache(redisClient)
	if err != nil {
		return err
	}

	tokens, err := utils.NewTokenManager(cfg.SymmetricKey)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close() //nolint:errcheck

	var wg sync.WaitGroup
	alerter := startAlerter(ctx, &wg, cfg, redisCache, log)

	wg.Add(1)
	go func() {
		defer wg.Done()
		monitorRedis(ctx, redisClient, log)
	}()

	handler := routes.SetupRoutes(routes.Dependencies{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Cache:     redisCache,
		Locker:    database.NewLocker(redisClient, log),
		Publisher: publisher,
		Alerter:   alerter,
		Tokens:    tokens,
		Log:       log,
	})

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		stop()
		wg.Wait()
		return err
	case <-ctx.Done():
	}

	// Create a context with a timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	wg.Wait()
	log.Info("server exited gracefully")
	return nil
}

func newPublisher(cfg *config.AppConfig, log *zap.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		log.Info("AMQP_URL not set, ledger events disabled")
		return events.NopPublisher{}, nil
	}
	return events.NewRabbitPublisher(cfg.AMQPURL, cfg.AMQPExchange, log)
}

// startAlerter runs the e-mail dispatcher until ctx is done.
func startAlerter(ctx context.Context, wg *sync.WaitGroup, cfg *config.AppConfig, dedupe notifier.Deduper, log *zap.Logger) notifier.Alerter {
	if cfg.SMTPHost == "" {
		log.Info("SMTP_HOST not set, capacity alerts disabled")
		return notifier.NopAlerter{}
	}

	sender := notifier.NewMailSender(notifier.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
	})
	dispatcher := notifier.NewDispatcher(sender, dedupe, cfg.AlertDedupeTTL, log)

	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Start(ctx)
	}()
	return dispatcher
}

func monitorRedis(ctx context.Context, client *redis.Client, log *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			database.MonitorRedisPool(client, log)
		}
	}
}
