package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/go-recommender/internal/cfg"
	v1Http "github.com/DRSN-tech/go-recommender/internal/delivery/v1/http"
	"github.com/DRSN-tech/go-recommender/internal/infrastructure/dataset"
	"github.com/DRSN-tech/go-recommender/internal/infrastructure/kafka"
	"github.com/DRSN-tech/go-recommender/internal/repository/localfs"
	"github.com/DRSN-tech/go-recommender/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/go-recommender/internal/repository/minio"
	"github.com/DRSN-tech/go-recommender/internal/repository/pgdb"
	qdrantRepo "github.com/DRSN-tech/go-recommender/internal/repository/qdrant"
	"github.com/DRSN-tech/go-recommender/internal/repository/redis"
	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/clients"
	"github.com/DRSN-tech/go-recommender/pkg/closer"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/DRSN-tech/go-recommender/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	topicTimeout    = 10 * time.Second
)

// App держит собранные зависимости сервиса и закрывает их при остановке.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
}

// NewApp загружает каталог из настроенных источников и собирает HTTP-сервер.
// При ошибке уже открытые подключения закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	ctx := context.Background()

	metadata, embeddings, err := a.initSources(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, index, err := usecase.NewCatalogLoader(metadata, embeddings, log).Load(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cartRepo, err := a.initCartRepo(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	publisher, err := a.initPublisher()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalogUC := usecase.NewCatalogUC(catalog, index, cfg.Recommend.PageSize, cfg.Recommend.K, log)
	cartUC := usecase.NewCartUC(cartRepo, catalog, publisher, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log, v1Http.NewMetrics(prometheus.DefaultRegisterer), prometheus.DefaultGatherer)
	router.Init(catalogUC, cartUC)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add("http server", func(ctx context.Context) error {
		if err := a.httpSrv.Stop(ctx); err != nil {
			return err
		}
		log.Infof("HTTP server stopped")
		return nil
	})

	return a, nil
}

// Run обслуживает запросы до сигнала остановки или ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.close()
	a.logger.Infof("Application shutdown complete")

	return appErr
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("%v", err)
	}
}

// initSources выбирает источники метаданных и эмбеддингов. Файловый источник
// создаётся, только если хотя бы одна из частей читается из файлов.
func (a *App) initSources(ctx context.Context) (usecase.MetadataSource, usecase.EmbeddingSource, error) {
	var (
		metadata   usecase.MetadataSource
		embeddings usecase.EmbeddingSource
	)

	if a.cfg.Dataset.MetadataSource == config.MetadataPostgres {
		db, err := a.initPGDB(ctx)
		if err != nil {
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}
		metadata = pgdb.NewMetadataSource(pgdb.NewStyleRepo(db.Pool), pgdb.NewImageLinkRepo(db.Pool))
	}

	if a.cfg.Dataset.EmbeddingSource == config.EmbeddingQdrant {
		qc, err := a.initQdrant()
		if err != nil {
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}
		embeddings = qdrantRepo.NewEmbeddingRepo(qc.Client, a.cfg.Qdrant, a.logger)
	}

	if metadata != nil && embeddings != nil {
		return metadata, embeddings, nil
	}

	files, err := a.initFileSource(ctx)
	if err != nil {
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if metadata == nil {
		metadata = files
	}
	if embeddings == nil {
		embeddings = files
	}

	return metadata, embeddings, nil
}

func (a *App) initFileSource(ctx context.Context) (*dataset.FileSource, error) {
	reader, err := a.initDatasetReader(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ds := a.cfg.Dataset
	files := dataset.Files{
		Styles:    ds.StylesFile,
		Images:    ds.ImagesFile,
		Features:  ds.FeaturesFile,
		Filenames: ds.FilenamesFile,
	}

	return dataset.NewFileSource(reader, files, a.logger), nil
}

func (a *App) initDatasetReader(ctx context.Context) (usecase.DatasetReader, error) {
	if a.cfg.Dataset.Source != config.DatasetMinIO {
		a.logger.Infof("reading dataset from directory %s", a.cfg.Dataset.Dir)
		return localfs.NewDirReader(a.cfg.Dataset.Dir), nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := clients.CheckBucket(checkCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.logger.Infof("reading dataset from bucket %s", a.cfg.Minio.BucketName)
	return s3Repo.NewObjectRepo(minioClient, a.cfg.Minio, a.logger), nil
}

func (a *App) initPGDB(ctx context.Context) (*postgres.PgDatabase, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := postgres.Connect(connCtx, a.cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		a.logger.Infof("PostgreSQL pool closed")
		return nil
	})

	if err := db.Ping(connCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(a.logger, postgres.DefaultMigrationsURL); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func (a *App) initQdrant() (*clients.QdrantClient, error) {
	qc, err := clients.NewQdrantClient(a.cfg.Qdrant)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("qdrant", func(context.Context) error {
		return qc.Close()
	})

	return qc, nil
}

func (a *App) initCartRepo(ctx context.Context) (usecase.CartRepository, error) {
	if a.cfg.Cart.Store != config.CartRedis {
		a.logger.Infof("cart store: in-memory, carts are lost on restart")
		return memory.NewCartRepo(), nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", func(context.Context) error {
		return redisClient.Close()
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := redisClient.Ping(pingCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.logger.Infof("cart store: redis %s, ttl %s", a.cfg.Redis.Addr, a.cfg.Cart.TTL)
	return redis.NewCartRepo(redisClient, a.cfg.Cart.TTL, a.logger), nil
}

func (a *App) initPublisher() (usecase.CartEventPublisher, error) {
	if a.cfg.Kafka == nil {
		return kafka.NopPublisher{}, nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error {
		if err := producer.Close(); err != nil {
			return err
		}
		a.logger.Infof("Kafka producer flushed")
		return nil
	})

	if err := producer.EnsureTopic(topicTimeout); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return producer, nil
}
