package bootstrap

import (
	"context"
	"testing"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/memstore"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/redisstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}

		store, err := OpenStore(ctx, cfg, StoreOptions{})
		require.NoError(t, err)
		assert.IsType(t, &memstore.Store{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{
			Database: config.DatabaseConfig{Driver: config.DriverRedis},
			Redis:    config.RedisConfig{Addr: mr.Addr()},
		}

		store, err := OpenStore(ctx, cfg, StoreOptions{})
		require.NoError(t, err)
		defer store.Close(ctx)
		assert.IsType(t, &redisstore.Store{}, store)
		assert.True(t, VerifyStore(ctx, store, StoreOptions{}))
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &config.Config{Database: config.DatabaseConfig{Driver: "cassandra"}}

		store, err := OpenStore(ctx, cfg, StoreOptions{})
		require.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestVerifyStoreDoesNotFailStartup(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	assert.True(t, VerifyStore(ctx, store, StoreOptions{}))

	store.FailPing(domain.ErrStorageUnavailable)
	assert.False(t, VerifyStore(ctx, store, StoreOptions{}))

	// the handle stays usable after a failed verification
	_, err := store.Insert(ctx, domain.CollectionProjects, domain.Document{"title": "Demo"})
	require.NoError(t, err)
}
