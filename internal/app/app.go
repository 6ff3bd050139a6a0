package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/libraria-tech/go-backend/internal/cfg"
	v1Http "github.com/libraria-tech/go-backend/internal/delivery/v1/http"
	"github.com/libraria-tech/go-backend/internal/infrastructure/kafka"
	minioInfra "github.com/libraria-tech/go-backend/internal/infrastructure/minio"
	"github.com/libraria-tech/go-backend/internal/infrastructure/openai"
	s3Repo "github.com/libraria-tech/go-backend/internal/repository/minio"
	"github.com/libraria-tech/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/libraria-tech/go-backend/internal/repository/pgdb/converter"
	qdrantRepo "github.com/libraria-tech/go-backend/internal/repository/qdrant"
	"github.com/libraria-tech/go-backend/internal/repository/redis"
	redisConv "github.com/libraria-tech/go-backend/internal/repository/redis/converter"
	"github.com/libraria-tech/go-backend/internal/usecase"
	"github.com/libraria-tech/go-backend/pkg/clients"
	"github.com/libraria-tech/go-backend/pkg/closer"
	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
	"github.com/libraria-tech/go-backend/pkg/postgres"
	"github.com/libraria-tech/go-backend/pkg/tokens"
)

// App связывает все слои приложения и управляет их жизненным циклом.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	httpSrv     *v1Http.Server
	worker      *kafka.OutboxWorker
	imagesInfra *minioInfra.MinioInfrastructure
	closer      *closer.Closer
	workerStop  context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	bookConv := pgdbConv.NewBookConverterImpl()
	authorConv := pgdbConv.NewAuthorConverterImpl()
	userConv := pgdbConv.NewUserConverterImpl()
	favoriteConv := pgdbConv.NewFavoriteConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewBookInfoConverterImpl()

	bookRepo := pgdb.NewBookRepo(db.Pool, bookConv)
	authorRepo := pgdb.NewAuthorRepo(db.Pool, authorConv)
	userRepo := pgdb.NewUserRepo(db.Pool, userConv)
	favoriteRepo := pgdb.NewFavoriteRepo(db.Pool, favoriteConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	qdrantCancel()
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	embRepo := qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	embedder := openai.NewEmbedder(cfg.Embedder, log)

	shutdownCtx, workerStop := context.WithCancel(context.Background())
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, shutdownCtx)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		workerStop()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		workerStop()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	tokenManager := tokens.NewManager(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	bookUC := usecase.NewBookUC(
		bookRepo,
		authorRepo,
		db.Pool,
		embedder,
		imagesInfra,
		embRepo,
		outboxRepo,
		cacheRepo,
		log,
	)

	authorUC := usecase.NewAuthorUC(authorRepo, log)
	authUC := usecase.NewAuthUC(userRepo, tokenManager, log)

	favoriteUC := usecase.NewFavoriteUC(
		favoriteRepo,
		bookRepo,
		embRepo,
		outboxRepo,
		bookUC,
		db.Pool,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, tokenManager, log)
	router.Init(authUC, bookUC, authorUC, favoriteUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:         cfg,
		logger:      log,
		httpSrv:     httpSrv,
		worker:      worker,
		imagesInfra: imagesInfra,
		closer:      cl,
		workerStop:  workerStop,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	workerCancel()
	a.worker.Stop()
	a.logger.Infof("Outbox worker stopped")

	done := make(chan error, 1)
	go func() {
		done <- a.imagesInfra.WaitForCleanup(shutdownCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			a.logger.Warnf("MinIO cleanup error: %v", err)
		} else {
			a.logger.Infof("MinIO cleanup completed")
		}
	case <-time.After(5 * time.Second): // локальный таймаут ожидания cleanup
		a.logger.Warnf("MinIO cleanup did not finish before shutdown, some temporary objects may remain")
	}
	a.workerStop()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
