package minio

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/jitter"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const (
	baseBackoff = 200 * time.Millisecond
	maxBackoff  = 3 * time.Second
)

// ObjectRepo открывает файлы набора данных, лежащие объектами в бакете MinIO.
type ObjectRepo struct {
	mc     *minio.Client
	cfg    *cfg.MinIOCfg
	logger logger.Logger
}

func NewObjectRepo(mc *minio.Client, cfg *cfg.MinIOCfg, logger logger.Logger) *ObjectRepo {
	return &ObjectRepo{
		mc:     mc,
		cfg:    cfg,
		logger: logger,
	}
}

// ObjectKey возвращает ключ объекта с учётом префикса бакета.
func (o *ObjectRepo) ObjectKey(name string) string {
	if o.cfg.Prefix == "" {
		return name
	}

	return path.Join(o.cfg.Prefix, name)
}

// Open возвращает поток объекта. GetObject ленивый, поэтому наличие объекта проверяется через Stat
// до того, как поток отдаётся парсерам. Отсутствующий объект не повторяется, прочие ошибки повторяются с backoff.
func (o *ObjectRepo) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := o.ObjectKey(name)

	var (
		obj     *minio.Object
		missing bool
	)
	err := jitter.Retry(ctx, max(o.cfg.MaxRetries, 1), baseBackoff, maxBackoff, func() error {
		var err error
		obj, err = o.mc.GetObject(ctx, o.cfg.BucketName, key, minio.GetObjectOptions{})
		if err != nil {
			return err
		}

		if _, err := obj.Stat(); err != nil {
			_ = obj.Close()
			if minio.ToErrorResponse(err).Code == "NoSuchKey" {
				missing = true
				return nil
			}
			return err
		}

		return nil
	}, func(attempt int, err error, wait time.Duration) {
		o.logger.Warnf("minio get %s/%s failed (attempt %d), retry in %s: %v", o.cfg.BucketName, key, attempt, wait, err)
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if missing {
		return nil, e.Wrap(whereami.WhereAmI(), e.Wrap(o.cfg.BucketName+"/"+key, e.ErrNotFound))
	}

	return obj, nil
}
