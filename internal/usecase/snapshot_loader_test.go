package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/usecase"
)

var testWindow = time.Date(2020, 9, 8, 19, 0, 0, 0, time.UTC)

func TestSnapshotPrefix(t *testing.T) {
	assert.Equal(t, "lime/2020/09/08/19", usecase.SnapshotPrefix("lime", testWindow))
	assert.Equal(t, "bird/2021/01/02/03", usecase.SnapshotPrefix("bird", time.Date(2021, 1, 2, 3, 59, 0, 0, time.UTC)))
}

func TestSnapshotLoader_LoadProvider(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("skips placeholder keys and malformed bodies", func(t *testing.T) {
		store := &MockObjectStore{}
		store.On("ListKeys", mock.Anything, "lime/2020/09/08/19", int32(1000)).Return([]string{
			"lime/2020/09/08/19/a.json",
			"lime/2020/09/08/19/samplestring.json",
			"lime/2020/09/08/19/b.json",
			"lime/2020/09/08/19/c.json",
		}, nil)
		store.On("GetObject", mock.Anything, "lime/2020/09/08/19/a.json").
			Return([]byte(`{"last_updated": 1599591600, "data": {"bikes": []}}`), nil)
		store.On("GetObject", mock.Anything, "lime/2020/09/08/19/b.json").
			Return([]byte(`{not json`), nil)
		store.On("GetObject", mock.Anything, "lime/2020/09/08/19/c.json").
			Return(nil, errors.New("connection reset"))

		loader := usecase.NewSnapshotLoader(store, []string{"samplestring"}, 1000, 2, logger)
		snapshots, err := loader.LoadProvider(ctx, "lime", testWindow)

		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, "lime", snapshots[0].Provider)
		assert.Equal(t, "lime/2020/09/08/19/a.json", snapshots[0].Key)
		assert.Equal(t, int64(1599591600), snapshots[0].LastUpdated)
		store.AssertNotCalled(t, "GetObject", mock.Anything, "lime/2020/09/08/19/samplestring.json")
	})

	t.Run("empty listing is not an error", func(t *testing.T) {
		store := &MockObjectStore{}
		store.On("ListKeys", mock.Anything, "bird/2020/09/08/19", int32(1000)).Return([]string{}, nil)

		loader := usecase.NewSnapshotLoader(store, nil, 1000, 1, logger)
		snapshots, err := loader.LoadProvider(ctx, "bird", testWindow)

		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})

	t.Run("listing failure is fatal", func(t *testing.T) {
		store := &MockObjectStore{}
		store.On("ListKeys", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrObjectStoreUnavailable)

		loader := usecase.NewSnapshotLoader(store, nil, 1000, 1, logger)
		_, err := loader.LoadProvider(ctx, "bird", testWindow)

		assert.ErrorIs(t, err, domain.ErrObjectStoreUnavailable)
	})
}

func TestSnapshotLoader_LoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("loads every provider", func(t *testing.T) {
		store := &MockObjectStore{}
		store.On("ListKeys", mock.Anything, "lime/2020/09/08/19", int32(10)).Return([]string{"lime/2020/09/08/19/1"}, nil)
		store.On("ListKeys", mock.Anything, "bird/2020/09/08/19", int32(10)).Return([]string{"bird/2020/09/08/19/1", "bird/2020/09/08/19/2"}, nil)
		store.On("GetObject", mock.Anything, mock.Anything).Return([]byte(`{"last_updated": "7"}`), nil)

		loader := usecase.NewSnapshotLoader(store, nil, 10, 2, zap.NewNop())
		result, err := loader.LoadAll(ctx, []string{"lime", "bird"}, testWindow)

		require.NoError(t, err)
		assert.Len(t, result["lime"], 1)
		assert.Len(t, result["bird"], 2)
		assert.Equal(t, int64(7), result["bird"][0].LastUpdated)
	})

	t.Run("one failing listing aborts", func(t *testing.T) {
		store := &MockObjectStore{}
		store.On("ListKeys", mock.Anything, "lime/2020/09/08/19", mock.Anything).Return([]string{}, nil)
		store.On("ListKeys", mock.Anything, "bird/2020/09/08/19", mock.Anything).Return(nil, domain.ErrObjectStoreUnavailable)

		loader := usecase.NewSnapshotLoader(store, nil, 10, 1, zap.NewNop())
		_, err := loader.LoadAll(ctx, []string{"lime", "bird"}, testWindow)

		assert.ErrorIs(t, err, domain.ErrObjectStoreUnavailable)
	})
}

func TestParseSnapshot(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{"number", `{"last_updated": 1599591600}`, 1599591600},
		{"numeric string", `{"last_updated": "1599591600"}`, 1599591600},
		{"float", `{"last_updated": 12.0}`, 12},
		{"missing", `{"data": {}}`, 0},
		{"not a number", `{"last_updated": "yesterday"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := usecase.ParseSnapshot("lime", "k", []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.LastUpdated)
		})
	}

	_, err := usecase.ParseSnapshot("lime", "k", []byte(`[1, 2`))
	assert.Error(t, err)
}
