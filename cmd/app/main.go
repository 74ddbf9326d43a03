package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/clinickart/backend/internal/api/http"
	"github.com/clinickart/backend/internal/cache"
	"github.com/clinickart/backend/internal/config"
	"github.com/clinickart/backend/internal/db"
	"github.com/clinickart/backend/internal/pending"
	"github.com/clinickart/backend/internal/queue/asynqserver"
	queueClient "github.com/clinickart/backend/internal/queue/client"
	"github.com/clinickart/backend/internal/repository"
	"github.com/clinickart/backend/internal/server"
	"github.com/clinickart/backend/internal/service"
	"github.com/clinickart/backend/internal/worker"
	"github.com/clinickart/backend/pkg/auth"
	emailProvider "github.com/clinickart/backend/pkg/email"
	"github.com/clinickart/backend/pkg/email/console"
	"github.com/clinickart/backend/pkg/email/sendgrid"
	"github.com/clinickart/backend/pkg/email/smtp"
	"github.com/clinickart/backend/pkg/hash"
	"github.com/clinickart/backend/pkg/logger"
	"github.com/clinickart/backend/pkg/otp"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate swag init -d ../../ -g internal/api/http/internal/v1/handler.go -o ../../docs --instanceName internal

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting backend api",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("db_driver", cfg.Database.Driver),
	)
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Init database
	repos, closeDB, err := newRepositories(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer closeDB()

	var redisClient redis.UniversalClient
	if cfg.NeedsRedis() {
		redisClient, err = cache.NewRedis(cfg.Cache)
		if err != nil {
			logger.Fatal("redis connect problem", zap.Error(err))
		}
		defer redisClient.Close()
		logger.Info("redis connection done")
	}

	pendingStore := newPendingStore(cfg, redisClient)
	sweeper := pending.NewSweeper(pendingStore, cfg.Registration.SweepInterval)
	go sweeper.Run(ctx)

	emailSender, err := newEmailProvider(cfg)
	if err != nil {
		logger.Fatal("email sender creation failed", zap.Error(err))
	}
	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})

	// Queue
	var asynqSrv *asynq.Server
	if cfg.Email.Enabled && cfg.Notify.Mode == config.NotifyModeQueue {
		asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
		defer asynqClient.Close()
		restore := queueClient.SetClient(asynqClient)
		defer restore()

		var mux *asynq.ServeMux
		asynqSrv, mux = asynqserver.New(cfg.Cache, workers)
		if err := asynqSrv.Start(mux); err != nil {
			logger.Fatal("asynq server start failed", zap.Error(err))
		}
		logger.Info("asynq server started")
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Fatal("auth manager creation err", zap.Error(err))
	}

	notifier := service.NewNotifier(cfg, workers)

	// Services, Repos & API Handlers
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hash.NewBcryptHasher(cfg.Auth.BcryptCost),
		TokenManager: tokenManager,
		OtpGenerator: otp.NewGOTPGenerator(cfg.Auth.OTPLength),
		PendingStore: pendingStore,
		PendingStats: sweeper,
		Notifier:     notifier,
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
			stop()
		}
	}()
	logger.Info("server started", zap.String("addr", srv.Addr()))

	// Graceful Shutdown
	<-ctx.Done()

	const timeout = 5 * time.Second

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}
	if direct, ok := notifier.(*service.DirectNotifier); ok {
		direct.Wait()
	}
	if asynqSrv != nil {
		asynqSrv.Shutdown()
	}

	logger.Info("app stopped")
}

func newRepositories(ctx context.Context, cfg config.Database) (*repository.Repositories, func(), error) {
	switch cfg.Driver {
	case config.DBDriverMongo:
		client, err := db.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect problem: %w", err)
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error("error when closing mongo", zap.Error(err))
			}
		}

		repos, err := repository.NewMongoRepositories(ctx, client.Database(cfg.Mongo.Database))
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		logger.Info("mongo connection done")
		return repos, closeFn, nil

	case config.DBDriverMySQL:
		dbMySQL, err := db.NewMySQL(cfg.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect problem: %w", err)
		}
		closeFn := func() {
			if err := dbMySQL.Close(); err != nil {
				logger.Error("error when closing mysql", zap.Error(err))
			}
		}

		if err := repository.MigrateMySQL(ctx, dbMySQL); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("mysql migrate: %w", err)
		}
		logger.Info("mysql connection done")
		return repository.NewMySQLRepositories(dbMySQL), closeFn, nil

	case config.DBDriverMemory:
		logger.Warn("using in-memory repositories, data is lost on restart")
		return repository.NewMemoryRepositories(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func newPendingStore(cfg *config.Config, redisClient redis.UniversalClient) pending.Store {
	opts := pending.Options{
		RegistrationTTL: cfg.Registration.PendingTTL,
		OTPTTL:          cfg.Registration.OTPTTL,
		MaxAttempts:     cfg.Registration.MaxOTPAttempts,
		Hasher:          hash.NewSHA256Hasher(cfg.Auth.OTPSalt),
	}

	if cfg.Registration.PendingStore == config.PendingStoreRedis {
		return pending.NewRedisStore(redisClient, opts)
	}
	return pending.NewMemoryStore(opts)
}

func newEmailProvider(cfg *config.Config) (emailProvider.Sender, error) {
	switch cfg.Email.Provider {
	case config.EmailProviderSMTP:
		return smtp.NewSMTPSender(cfg.Email.From, cfg.Email.FromName, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	case config.EmailProviderSendGrid:
		return sendgrid.NewSender(cfg.SendGrid.APIKey, cfg.Email.From, cfg.Email.FromName)
	case config.EmailProviderConsole:
		return console.NewSender(), nil
	}

	return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
}
