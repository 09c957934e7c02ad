package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

// Источники входных данных
const (
	DatasetLocal = "local"
	DatasetMinIO = "minio"

	MetadataFile     = "file"
	MetadataPostgres = "postgres"

	EmbeddingFile   = "file"
	EmbeddingQdrant = "qdrant"

	CartMemory = "memory"
	CartRedis  = "redis"
)

// Config — конфигурация приложения. Необязательные подсистемы равны nil, если не настроены.
type Config struct {
	Dataset   *DatasetCfg
	Http      *HTTPConfig
	Minio     *MinIOCfg
	Db        *PGDBCfg
	Qdrant    *QdrantCfg
	Redis     *RedisCfg
	Kafka     *KafkaCfg
	Cart      *CartCfg
	Recommend *RecommendCfg
}

type DatasetCfg struct {
	Source          string // local | minio
	Dir             string // каталог с файлами для local
	StylesFile      string
	ImagesFile      string
	FeaturesFile    string
	FilenamesFile   string
	MetadataSource  string // file | postgres
	EmbeddingSource string // file | qdrant
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет с файлами набора данных
	Prefix            string // Префикс ключей объектов внутри бакета
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	MaxRetries        int
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type QdrantCfg struct {
	Port                 int
	Host                 string
	ApiKey               string
	QdrantCollectionName string // имя коллекции в Qdrant
	UseTLS               bool
	BatchSize            int
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	KeyPrefix   string // пространство ключей при общем Redis, пусто — без префикса
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type CartCfg struct {
	Store string // memory | redis
	TTL   time.Duration
}

type RecommendCfg struct {
	K        int // число похожих товаров по умолчанию
	PageSize int // размер головы отфильтрованной выдачи
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Переменные из .env подхватываются, если файл существует, и не перекрывают уже заданные.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to read .env: %v", err)
	}

	dataset, err := loadDatasetCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cart, err := loadCartCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	recommend, err := loadRecommendCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if db == nil && dataset.MetadataSource == MetadataPostgres {
		return nil, e.Wrap("METADATA_SOURCE=postgres", e.ErrSourceNotConfigured)
	}

	minio, err := loadMinIOCfg(log, dataset.Source == DatasetMinIO)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if qdrant == nil && dataset.EmbeddingSource == EmbeddingQdrant {
		return nil, e.Wrap("EMBEDDING_SOURCE=qdrant", e.ErrSourceNotConfigured)
	}

	var redis *RedisCfg
	if cart.Store == CartRedis {
		if redis, err = loadRedisCfg(log); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Dataset:   dataset,
		Http:      http,
		Minio:     minio,
		Db:        db,
		Qdrant:    qdrant,
		Redis:     redis,
		Kafka:     kafka,
		Cart:      cart,
		Recommend: recommend,
	}, nil
}

func loadDatasetCfg() (*DatasetCfg, error) {
	const (
		defaultDir       = "data"
		defaultStyles    = "styles.csv"
		defaultImages    = "images.csv"
		defaultFeatures  = "embeddings.csv"
		defaultFilenames = "filenames.txt"
	)

	source, err := parseChoiceEnv("DATASET_SOURCE", DatasetLocal, DatasetLocal, DatasetMinIO)
	if err != nil {
		return nil, err
	}

	metadata, err := parseChoiceEnv("METADATA_SOURCE", MetadataFile, MetadataFile, MetadataPostgres)
	if err != nil {
		return nil, err
	}

	embedding, err := parseChoiceEnv("EMBEDDING_SOURCE", EmbeddingFile, EmbeddingFile, EmbeddingQdrant)
	if err != nil {
		return nil, err
	}

	return &DatasetCfg{
		Source:          source,
		Dir:             getEnvOrDefault("DATASET_DIR", defaultDir),
		StylesFile:      getEnvOrDefault("STYLES_FILE", defaultStyles),
		ImagesFile:      getEnvOrDefault("IMAGES_FILE", defaultImages),
		FeaturesFile:    getEnvOrDefault("FEATURES_FILE", defaultFeatures),
		FilenamesFile:   getEnvOrDefault("FILENAMES_FILE", defaultFilenames),
		MetadataSource:  metadata,
		EmbeddingSource: embedding,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadMinIOCfg(log logger.Logger, required bool) (*MinIOCfg, error) {
	const (
		defaultUseSSL     = false
		defaultEndpoint   = "minio:9000"
		defaultMaxRetries = 3
	)

	bucket := getEnv("BUCKET_NAME")
	if bucket == "" {
		if required {
			return nil, e.Wrap("DATASET_SOURCE=minio requires BUCKET_NAME", e.ErrSourceNotConfigured)
		}
		return nil, nil
	}

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MINIO_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("MINIO_MAX_RETRIES", err)
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        bucket,
		Prefix:            strings.Trim(getEnv("MINIO_PREFIX"), "/"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		MaxRetries:        maxRetries,
	}, nil
}

// loadPGDBCfg возвращает nil, если POSTGRES_DB не задан.
func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		return nil, nil
	}

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

// loadQdrantCfg возвращает nil, если QDRANT_HOST не задан.
func loadQdrantCfg(logger logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultCollection     = "fashion_images"
		defaultBatchSize      = 256
	)

	host := getEnv("QDRANT_HOST")
	if host == "" {
		return nil, nil
	}

	port, err := strconv.Atoi(getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	batchSize, err := parseIntEnv("QDRANT_BATCH_SIZE", defaultBatchSize)
	if err != nil || batchSize <= 0 {
		return nil, e.Wrap("QDRANT_BATCH_SIZE", e.ErrIncorrectEnvVariable)
	}

	return &QdrantCfg{
		Host:                 host,
		Port:                 port,
		ApiKey:               getEnv("QDRANT__SERVICE__API_KEY"),
		QdrantCollectionName: getEnvOrDefault("COLLECTION_NAME", defaultCollection),
		UseTLS:               useTLS,
		BatchSize:            batchSize,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := max(readTimeout, writeTimeout)

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		KeyPrefix:   strings.Trim(getEnv("REDIS_KEY_PREFIX"), ": "),
	}, nil
}

// loadKafkaCfg возвращает nil без KAFKA_BROKERS: события корзины тогда не публикуются.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "cart-events"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, nil
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadCartCfg() (*CartCfg, error) {
	const defaultTTL = 24 * time.Hour

	store, err := parseChoiceEnv("CART_STORE", CartMemory, CartMemory, CartRedis)
	if err != nil {
		return nil, err
	}

	ttl, err := parseDurationEnv("CART_TTL", defaultTTL)
	if err != nil {
		return nil, e.Wrap("CART_TTL", err)
	}

	return &CartCfg{
		Store: store,
		TTL:   ttl,
	}, nil
}

func loadRecommendCfg() (*RecommendCfg, error) {
	const (
		defaultK        = 10
		defaultPageSize = 10
	)

	k, err := parseIntEnv("RECOMMEND_K", defaultK)
	if err != nil || k < 0 {
		return nil, e.Wrap("RECOMMEND_K", e.ErrIncorrectEnvVariable)
	}

	pageSize, err := parseIntEnv("PAGE_SIZE", defaultPageSize)
	if err != nil || pageSize <= 0 {
		return nil, e.Wrap("PAGE_SIZE", e.ErrIncorrectEnvVariable)
	}

	return &RecommendCfg{
		K:        k,
		PageSize: pageSize,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

// parseChoiceEnv допускает только значения из allowed (без учёта регистра).
func parseChoiceEnv(key, defaultValue string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(getEnvOrDefault(key, defaultValue)))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}

	return "", fmt.Errorf("%w: %s=%q", e.ErrUnknownSource, key, v)
}
