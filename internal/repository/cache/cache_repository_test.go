package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/repository/cache"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	return client
}

func TestCacheRepository_Boundary(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()))
	ctx := context.Background()
	defer repo.Delete(ctx, "boundary:ward")

	data, err := repo.GetBoundary(ctx, domain.LayerWard)
	require.NoError(t, err)
	assert.Nil(t, data, "expected cache miss")

	payload := []byte(`{"type":"FeatureCollection","features":[]}`)
	require.NoError(t, repo.SetBoundary(ctx, domain.LayerWard, payload, time.Minute))

	data, err = repo.GetBoundary(ctx, domain.LayerWard)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	require.NoError(t, repo.DeleteBoundary(ctx, domain.LayerWard))
	data, err = repo.GetBoundary(ctx, domain.LayerWard)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCacheRepository_Figure(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()))
	ctx := context.Background()
	defer repo.Delete(ctx, "figure:zip")

	figure := &domain.Figure{
		Data: []domain.ChoroplethTrace{{
			Type:      "choropleth",
			Locations: []string{"ZIP 60601"},
			Z:         []float64{3},
		}},
		Layout: domain.FigureLayout{Title: domain.Text{Text: "Number of scooters by ZIP code"}},
	}
	require.NoError(t, repo.SetFigure(ctx, domain.LayerZip, figure, time.Minute))

	got, err := repo.GetFigure(ctx, domain.LayerZip)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"ZIP 60601"}, got.Data[0].Locations)
	assert.Equal(t, "Number of scooters by ZIP code", got.Layout.Title.Text)
}

func TestNopCacheRepository(t *testing.T) {
	repo := cache.NewNopCacheRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetBoundary(ctx, domain.LayerZip, []byte("{}"), time.Minute))
	data, err := repo.GetBoundary(ctx, domain.LayerZip)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, repo.DeleteBoundary(ctx, domain.LayerZip))

	figure, err := repo.GetFigure(ctx, domain.LayerZip)
	require.NoError(t, err)
	assert.Nil(t, figure)
}
