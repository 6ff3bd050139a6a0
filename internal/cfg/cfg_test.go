package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria-tech/go-backend/pkg/e"
)

func TestLoadEmbedderCfg(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := loadEmbedderCfg()

		require.NoError(t, err)
		assert.Equal(t, "text-embedding-3-small", cfg.Model)
		assert.Equal(t, 384, cfg.Dimensions)
		assert.Equal(t, 3, cfg.MaxRetries)
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		_, err := loadEmbedderCfg()
		assert.Error(t, err)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("EMBEDDING_MODEL", "text-embedding-3-large")
		t.Setenv("EMBEDDING_DIMENSIONS", "1024")

		cfg, err := loadEmbedderCfg()

		require.NoError(t, err)
		assert.Equal(t, "text-embedding-3-large", cfg.Model)
		assert.Equal(t, 1024, cfg.Dimensions)
	})
}

func TestLoadAuthCfg(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := loadAuthCfg()

		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.Secret)
		assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
		assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := loadAuthCfg()
		assert.Error(t, err)
	})

	t.Run("custom ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_ACCESS_TTL", "30m")

		cfg, err := loadAuthCfg()

		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	})
}

func TestLoadKafkaCfg(t *testing.T) {
	t.Run("brokers split", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("KAFKA_TOPIC", "catalog-events")

		cfg, err := loadKafkaCfg()

		require.NoError(t, err)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
		assert.Equal(t, "catalog-events", cfg.Topic)
		assert.Equal(t, 3, cfg.Partitions)
	})

	t.Run("missing brokers", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "")

		_, err := loadKafkaCfg()
		assert.Error(t, err)
	})
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "17")
	v, err := parseIntEnv("SOME_INT", 3)
	require.NoError(t, err)
	assert.Equal(t, 17, v)

	t.Setenv("SOME_INT", "")
	v, err = parseIntEnv("SOME_INT", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	t.Setenv("SOME_INT", "abc")
	_, err = parseIntEnv("SOME_INT", 3)
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}
