package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/scooter-map/internal/config"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"github.com/scooter-map/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SnapshotLoader загружает снимки провайдеров из объектного хранилища за окно
type SnapshotLoader struct {
	store          repository.ObjectStore
	ignorePatterns []string
	maxKeys        int32
	workers        int
	logger         *zap.Logger
}

// NewSnapshotLoader создает новый экземпляр SnapshotLoader
func NewSnapshotLoader(
	store repository.ObjectStore,
	ignorePatterns []string,
	maxKeys int32,
	workers int,
	logger *zap.Logger,
) *SnapshotLoader {
	if workers < 1 {
		workers = 1
	}
	return &SnapshotLoader{
		store:          store,
		ignorePatterns: ignorePatterns,
		maxKeys:        maxKeys,
		workers:        workers,
		logger:         logger,
	}
}

// SnapshotPrefix - префикс ключей провайдера за окно, например lime/2020/09/08/19
func SnapshotPrefix(provider string, window time.Time) string {
	return provider + "/" + window.UTC().Format(config.WindowPrefixLayout)
}

// LoadProvider загружает все снимки провайдера за окно.
// Пустой листинг - не ошибка. Объекты с битым JSON или ошибкой чтения пропускаются с предупреждением.
func (l *SnapshotLoader) LoadProvider(ctx context.Context, provider string, window time.Time) ([]domain.Snapshot, error) {
	prefix := SnapshotPrefix(provider, window)

	keys, err := l.store.ListKeys(ctx, prefix, l.maxKeys)
	if err != nil {
		return nil, fmt.Errorf("list snapshots for %s: %w", provider, err)
	}

	snapshots := make([]domain.Snapshot, 0, len(keys))
	for _, key := range keys {
		if l.isIgnored(key) {
			metrics.SnapshotsSkippedTotal.WithLabelValues(provider, "ignored_key").Inc()
			continue
		}

		body, err := l.store.GetObject(ctx, key)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("load snapshots for %s: %w", provider, ctxErr)
			}
			l.logger.Warn("Skipping snapshot: fetch failed",
				zap.String("provider", provider),
				zap.String("key", key),
				zap.Error(err))
			metrics.SnapshotsSkippedTotal.WithLabelValues(provider, "fetch_error").Inc()
			continue
		}

		snapshot, err := ParseSnapshot(provider, key, body)
		if err != nil {
			l.logger.Warn("Skipping snapshot: malformed JSON",
				zap.String("provider", provider),
				zap.String("key", key),
				zap.Error(err))
			metrics.SnapshotsSkippedTotal.WithLabelValues(provider, "malformed").Inc()
			continue
		}

		snapshots = append(snapshots, snapshot)
	}

	metrics.SnapshotsLoadedTotal.WithLabelValues(provider).Add(float64(len(snapshots)))
	l.logger.Info("Snapshots loaded",
		zap.String("provider", provider),
		zap.String("prefix", prefix),
		zap.Int("listed", len(keys)),
		zap.Int("loaded", len(snapshots)))

	return snapshots, nil
}

// LoadAll загружает провайдеров параллельно, не более workers одновременно.
// Ошибка листинга любого провайдера прерывает загрузку.
func (l *SnapshotLoader) LoadAll(ctx context.Context, providers []string, window time.Time) (map[string][]domain.Snapshot, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	results := make([][]domain.Snapshot, len(providers))
	for i, provider := range providers {
		i, provider := i, provider
		g.Go(func() error {
			snapshots, err := l.LoadProvider(gctx, provider, window)
			if err != nil {
				return err
			}
			results[i] = snapshots
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byProvider := make(map[string][]domain.Snapshot, len(providers))
	for i, provider := range providers {
		byProvider[provider] = results[i]
	}
	return byProvider, nil
}

func (l *SnapshotLoader) isIgnored(key string) bool {
	for _, pattern := range l.ignorePatterns {
		if pattern != "" && strings.Contains(key, pattern) {
			return true
		}
	}
	return false
}

type snapshotDocument struct {
	LastUpdated json.RawMessage            `json:"last_updated"`
	Data        map[string]json.RawMessage `json:"data"`
}

// ParseSnapshot разбирает тело объекта. Документ без data допустим (в нем просто нет транспорта).
func ParseSnapshot(provider, key string, body []byte) (domain.Snapshot, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		Provider:    provider,
		Key:         key,
		LastUpdated: extractTime(doc.LastUpdated),
		Data:        doc.Data,
	}, nil
}

// extractTime читает last_updated (число или числовая строка), иначе 0
func extractTime(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if v, err := n.Int64(); err == nil {
		return v
	}
	if f, err := n.Float64(); err == nil {
		return int64(f)
	}
	return 0
}
