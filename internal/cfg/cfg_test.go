package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"POSTGRES_DB", "QDRANT_HOST", "KAFKA_BROKERS", "BUCKET_NAME", "CART_STORE", "DATASET_SOURCE", "METADATA_SOURCE", "EMBEDDING_SOURCE", "RECOMMEND_K", "PAGE_SIZE"} {
		t.Setenv(key, "")
	}

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, DatasetLocal, c.Dataset.Source)
	assert.Equal(t, MetadataFile, c.Dataset.MetadataSource)
	assert.Equal(t, EmbeddingFile, c.Dataset.EmbeddingSource)
	assert.Equal(t, CartMemory, c.Cart.Store)
	assert.Equal(t, 24*time.Hour, c.Cart.TTL)
	assert.Equal(t, 10, c.Recommend.K)
	assert.Equal(t, 10, c.Recommend.PageSize)

	assert.Nil(t, c.Db)
	assert.Nil(t, c.Qdrant)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Kafka)
	assert.Nil(t, c.Minio)
}

func TestLoad_OptionalSubsystems(t *testing.T) {
	t.Setenv("CART_STORE", "Redis")
	t.Setenv("CART_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("QDRANT_HOST", "qdrant")
	t.Setenv("EMBEDDING_SOURCE", "qdrant")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, CartRedis, c.Cart.Store)
	assert.Equal(t, 2*time.Hour, c.Cart.TTL)
	require.NotNil(t, c.Redis)
	require.NotNil(t, c.Kafka)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "cart-events", c.Kafka.Topic)
	require.NotNil(t, c.Qdrant)
	assert.Equal(t, 6334, c.Qdrant.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{
			name: "unknown dataset source",
			env:  map[string]string{"DATASET_SOURCE": "ftp"},
			want: e.ErrUnknownSource,
		},
		{
			name: "postgres metadata without database",
			env:  map[string]string{"METADATA_SOURCE": "postgres", "POSTGRES_DB": ""},
			want: e.ErrSourceNotConfigured,
		},
		{
			name: "qdrant embeddings without host",
			env:  map[string]string{"EMBEDDING_SOURCE": "qdrant", "QDRANT_HOST": ""},
			want: e.ErrSourceNotConfigured,
		},
		{
			name: "minio without bucket",
			env:  map[string]string{"DATASET_SOURCE": "minio", "BUCKET_NAME": ""},
			want: e.ErrSourceNotConfigured,
		},
		{
			name: "negative k",
			env:  map[string]string{"RECOMMEND_K": "-1"},
			want: e.ErrIncorrectEnvVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(logger.Nop{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
