package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/scooter-map/internal/domain"
)

// MockObjectStore is a mock of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListKeys(ctx context.Context, prefix string, maxKeys int32) ([]string, error) {
	args := m.Called(ctx, prefix, maxKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockObjectStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockBoundarySource is a mock of BoundarySource
type MockBoundarySource struct {
	mock.Mock
}

func (m *MockBoundarySource) Fetch(ctx context.Context, kind domain.LayerKind) ([]byte, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetBoundary(ctx context.Context, kind domain.LayerKind) ([]byte, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetBoundary(ctx context.Context, kind domain.LayerKind, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, kind, data, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteBoundary(ctx context.Context, kind domain.LayerKind) error {
	args := m.Called(ctx, kind)
	return args.Error(0)
}

func (m *MockCacheRepository) GetFigure(ctx context.Context, kind domain.LayerKind) (*domain.Figure, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Figure), args.Error(1)
}

func (m *MockCacheRepository) SetFigure(ctx context.Context, kind domain.LayerKind, figure *domain.Figure, ttl time.Duration) error {
	args := m.Called(ctx, kind, figure, ttl)
	return args.Error(0)
}

// MockArchiveRepository is a mock of ArchiveRepository
type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockArchiveRepository) SaveRun(ctx context.Context, run domain.RunRecord, counts []domain.AreaCountRecord) error {
	args := m.Called(ctx, run, counts)
	return args.Error(0)
}

func (m *MockArchiveRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunRecord), args.Error(1)
}

func (m *MockArchiveRepository) GetCounts(ctx context.Context, runID string, layer domain.LayerKind) ([]domain.AreaCountRecord, error) {
	args := m.Called(ctx, runID, layer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AreaCountRecord), args.Error(1)
}

// MockPipelineRunner is a mock of PipelineRunner
type MockPipelineRunner struct {
	mock.Mock
}

func (m *MockPipelineRunner) Run(ctx context.Context) (*domain.PipelineResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineResult), args.Error(1)
}

// squareGeoJSON - квадрат [x0,x0+size]x[y0,y0+size] в виде GeoJSON Polygon
func squareGeoJSON(x0, y0, size float64) string {
	return fmt.Sprintf(`{"type":"Polygon","coordinates":[[[%g,%g],[%g,%g],[%g,%g],[%g,%g],[%g,%g]]]}`,
		x0, y0, x0+size, y0, x0+size, y0+size, x0, y0+size, x0, y0)
}

// featureCollection собирает FeatureCollection из пар (properties JSON, geometry JSON)
func featureCollection(features ...[2]string) []byte {
	parts := make([]string, len(features))
	for i, f := range features {
		parts[i] = fmt.Sprintf(`{"type":"Feature","properties":%s,"geometry":%s}`, f[0], f[1])
	}
	return []byte(`{"type":"FeatureCollection","features":[` + strings.Join(parts, ",") + `]}`)
}
