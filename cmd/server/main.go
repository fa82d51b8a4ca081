package main

import (
	"context"
	"errors"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/blog/api/handler"
	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/internal/config"
	"github.com/fastygo/blog/internal/infrastructure/buffer"
	"github.com/fastygo/blog/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/blog/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/blog/internal/infrastructure/redis"
	"github.com/fastygo/blog/internal/mail"
	"github.com/fastygo/blog/internal/metrics"
	"github.com/fastygo/blog/internal/middleware"
	"github.com/fastygo/blog/internal/password"
	"github.com/fastygo/blog/internal/router"
	"github.com/fastygo/blog/internal/services"
	"github.com/fastygo/blog/internal/services/lifecycle"
	"github.com/fastygo/blog/internal/token"
	"github.com/fastygo/blog/pkg/httpcontext"
	"github.com/fastygo/blog/pkg/logger"
	"github.com/fastygo/blog/repository/postgres"
	redisRepo "github.com/fastygo/blog/repository/redis"
	authUC "github.com/fastygo/blog/usecase/auth"
	categoryUC "github.com/fastygo/blog/usecase/category"
	postUC "github.com/fastygo/blog/usecase/post"
	userUC "github.com/fastygo/blog/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingSecret) {
			log.Fatalf("refusing to start: %v", err)
		}
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Service:     cfg.AppName,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	tokens, err := token.New(cfg.JWT)
	if err != nil {
		zapLogger.Fatal("token service", zap.Error(err))
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Error("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("invalid database configuration", zap.Error(err))
	}
	manager.OnStop("postgres", func(context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("invalid redis configuration", zap.Error(err))
	}
	manager.OnStop("redis", func(context.Context) error {
		return redisClient.Close()
	})

	// without the buffer, mail is dropped while redis is down
	bufferStore, err := buffer.Open(cfg.Buffer.Path)
	if err != nil {
		zapLogger.Error("mail buffer unavailable", zap.String("path", cfg.Buffer.Path), zap.Error(err))
	}
	manager.OnStop("buffer", func(context.Context) error {
		return bufferStore.Close()
	})

	mailQueue := redisRepo.NewMailQueue(redisClient, cfg.Mail.QueueKey)

	mon := monitor.New(monitor.Probes{
		Postgres:   pgInfra.Probe(pool),
		Redis:      redisInfra.Probe(redisClient),
		BufferSize: bufferStore.Size,
		QueueSize:  mailQueue.Len,
	}, cfg.Buffer.SyncInterval, zapLogger)
	mon.Start()
	manager.OnStop("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})

	bufferProcessor := services.NewBufferProcessor(bufferStore, mailQueue, mon, zapLogger, services.ProcessorConfig{
		Interval:  cfg.Buffer.SyncInterval,
		BatchSize: cfg.Buffer.BatchSize,
	})
	bufferProcessor.Start()
	manager.OnStop("buffer_processor", bufferProcessor.Stop)

	mailWorker := services.NewMailWorker(mailQueue, mail.NewSender(cfg.Mail, zapLogger), zapLogger, services.WorkerConfig{
		Workers:  cfg.Mail.Workers,
		MaxRetry: cfg.Mail.MaxRetry,
	})
	mailWorker.Start(appCtx)
	manager.OnStop("mail_worker", mailWorker.Stop)

	dispatcher := services.NewMailDispatcher(mailQueue, bufferStore, zapLogger)

	userRepo := postgres.NewUserRepository(pool)
	postRepo := postgres.NewPostRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	likeRepo := postgres.NewLikeRepository(pool)

	authUseCase := authUC.New(
		userRepo,
		password.NewHasher(cfg.Security.BcryptCost),
		tokens,
		dispatcher,
		authUC.Config{FrontendURL: cfg.FrontendURL, TokenTTL: cfg.JWT.TokenExpiration},
		zapLogger,
	)
	userUseCase := userUC.New(userRepo, zapLogger)
	postUseCase := postUC.New(postRepo, commentRepo, categoryRepo, likeRepo, zapLogger)
	categoryUseCase := categoryUC.New(categoryRepo, postRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(appCtx, cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		User:     apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Post:     apiHandler.NewPostHandler(postUseCase, ctxAdapter, zapLogger),
		Category: apiHandler.NewCategoryHandler(categoryUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	if cfg.HTTP.EnableMetrics {
		handlers.Metrics = metrics.Handler()
	}

	r := router.New(handlers, router.Guards{
		Authenticate: middleware.Authenticate(authUseCase, ctxAdapter, zapLogger),
		Admin:        middleware.RequireRole(domain.RoleAdmin),
	})

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	manager.Go("http_server", func() error {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		return server.ListenAndServe(cfg.Address())
	})
	manager.OnStop("http_server", server.ShutdownWithContext)

	if err := manager.Wait(appCtx); err != nil {
		zapLogger.Error("shutdown finished with errors", zap.Error(err))
	}
}
