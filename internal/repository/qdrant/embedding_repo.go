package qdrant

import (
	"context"
	"sort"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/jitter"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// Ключи payload точки
const (
	payloadImagePath = "image_path"
	payloadPosition  = "position"
)

const (
	maxUpsertRetries = 3
	baseBackoff      = 200 * time.Millisecond
	maxBackoff       = 2 * time.Second
)

// EmbeddingRepo репозиторий для работы с embedding-векторами в Qdrant
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
	logger logger.Logger
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg, logger logger.Logger) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// PointID детерминированно выводит идентификатор точки из ссылки на изображение,
// поэтому повторный импорт перезаписывает те же точки.
func PointID(ref string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(ref)).String()
}

// Upsert сохраняет индекс в коллекцию пачками по cfg.BatchSize.
func (q *EmbeddingRepo) Upsert(ctx context.Context, index *domain.EmbeddingIndex) error {
	refs := index.Refs()
	wait := true

	for start := 0; start < len(refs); start += q.cfg.BatchSize {
		end := min(start+q.cfg.BatchSize, len(refs))

		points := make([]*qdrant.PointStruct, 0, end-start)
		for pos := start; pos < end; pos++ {
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(PointID(refs[pos])),
				Vectors: qdrant.NewVectors(index.Vector(pos)...),
				Payload: qdrant.NewValueMap(map[string]any{
					payloadImagePath: refs[pos],
					payloadPosition:  int64(pos),
				}),
			})
		}

		req := &qdrant.UpsertPoints{
			CollectionName: q.cfg.QdrantCollectionName,
			Wait:           &wait,
			Points:         points,
		}
		if err := q.upsertWithRetry(ctx, req); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		q.logger.Debugf("qdrant: upserted points %d..%d of %d", start, end, len(refs))
	}

	return nil
}

func (q *EmbeddingRepo) upsertWithRetry(ctx context.Context, req *qdrant.UpsertPoints) error {
	return jitter.Retry(ctx, maxUpsertRetries, baseBackoff, maxBackoff, func() error {
		_, err := q.client.Upsert(ctx, req)
		return err
	}, func(attempt int, err error, wait time.Duration) {
		q.logger.Warnf("qdrant upsert failed (attempt %d), retry in %s: %v", attempt, wait, err)
	})
}

type loadedPoint struct {
	ref      string
	position int64
	vector   []float32
}

// LoadIndex выгружает всю коллекцию постранично и строит индекс.
// Точки упорядочиваются по позиции, сохранённой при импорте, затем по ссылке.
func (q *EmbeddingRepo) LoadIndex(ctx context.Context) (*domain.EmbeddingIndex, error) {
	limit := uint32(q.cfg.BatchSize)

	var (
		points []loadedPoint
		offset *qdrant.PointId
	)

	for {
		res, err := q.client.GetPointsClient().Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: q.cfg.QdrantCollectionName,
			Offset:         offset,
			Limit:          &limit,
			WithPayload:    qdrant.NewWithPayload(true),
			WithVectors:    qdrant.NewWithVectors(true),
		})
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		for _, p := range res.GetResult() {
			payload := p.GetPayload()

			ref := payload[payloadImagePath].GetStringValue()
			if ref == "" {
				q.logger.Warnf("qdrant: point %s has no %s payload, skipped", p.GetId().String(), payloadImagePath)
				continue
			}

			position := int64(-1)
			if v, ok := payload[payloadPosition]; ok {
				position = v.GetIntegerValue()
			}

			points = append(points, loadedPoint{
				ref:      ref,
				position: position,
				vector:   denseVector(p.GetVectors().GetVector()),
			})
		}

		offset = res.GetNextPageOffset()
		if offset == nil {
			break
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].position != points[j].position {
			return points[i].position < points[j].position
		}
		return points[i].ref < points[j].ref
	})

	refs := make([]string, len(points))
	vectors := make([][]float32, len(points))
	for i, p := range points {
		refs[i] = p.ref
		vectors[i] = p.vector
	}

	index, err := domain.NewEmbeddingIndex(refs, vectors)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return index, nil
}

func denseVector(v *qdrant.VectorOutput) []float32 {
	if dense := v.GetDense(); dense != nil {
		return dense.GetData()
	}

	return v.GetData()
}
