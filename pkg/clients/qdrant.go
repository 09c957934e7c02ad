package clients

import (
	"context"
	"fmt"

	config "github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantClient struct {
	Client *qdrant.Client
	cfg    *config.QdrantCfg
}

func NewQdrantClient(cfg *config.QdrantCfg) (*QdrantClient, error) {
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.ApiKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &QdrantClient{
		Client: qdrantClient,
		cfg:    cfg,
	}, nil
}

func (c *QdrantClient) Close() error {
	return c.Client.Close()
}

// Collection возвращает имя коллекции с эмбеддингами каталога.
func (c *QdrantClient) Collection() string {
	return c.cfg.QdrantCollectionName
}

// EnsureCollection создаёт коллекцию под векторы размерности vectorSize, если её ещё нет.
// Существующая коллекция должна хранить векторы той же размерности с косинусной метрикой.
func EnsureCollection(ctx context.Context, client *QdrantClient, vectorSize uint64) error {
	name := client.Collection()

	exists, err := client.Client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if exists {
		info, err := client.Client.GetCollectionInfo(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get collection %s: %w", name, err)
		}
		if err := checkVectorParams(info, vectorSize); err != nil {
			return e.Wrap(name, err)
		}
		return nil
	}

	if err := client.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	return nil
}

// checkVectorParams сверяет параметры неименованного вектора коллекции.
func checkVectorParams(info *qdrant.CollectionInfo, vectorSize uint64) error {
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return fmt.Errorf("%w: collection has no default vector", e.ErrCollectionMismatch)
	}

	if params.GetSize() != vectorSize {
		return fmt.Errorf("%w: vector size %d, index dimension %d", e.ErrCollectionMismatch, params.GetSize(), vectorSize)
	}

	if params.GetDistance() != qdrant.Distance_Cosine {
		return fmt.Errorf("%w: distance %s, want Cosine", e.ErrCollectionMismatch, params.GetDistance())
	}

	return nil
}
