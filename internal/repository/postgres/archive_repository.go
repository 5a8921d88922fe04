package postgres

import (
	"context"
	"fmt"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"go.uber.org/zap"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scooter_runs (
	run_id         UUID PRIMARY KEY,
	window_start   TIMESTAMPTZ NOT NULL,
	started_at     TIMESTAMPTZ NOT NULL,
	finished_at    TIMESTAMPTZ NOT NULL,
	total_vehicles INTEGER NOT NULL,
	providers      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS area_counts (
	run_id       UUID NOT NULL REFERENCES scooter_runs(run_id) ON DELETE CASCADE,
	layer        TEXT NOT NULL,
	area_id      TEXT NOT NULL,
	location_key TEXT NOT NULL,
	count        INTEGER NOT NULL,
	PRIMARY KEY (run_id, layer, area_id)
);

CREATE INDEX IF NOT EXISTS idx_scooter_runs_started_at ON scooter_runs (started_at DESC);
`

type archiveRepository struct {
	db *DB
}

func NewArchiveRepository(db *DB) repository.ArchiveRepository {
	return &archiveRepository{db: db}
}

func (r *archiveRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

// SaveRun сохраняет прогон и счетчики одной транзакцией
func (r *archiveRepository) SaveRun(ctx context.Context, run domain.RunRecord, counts []domain.AreaCountRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO scooter_runs (run_id, window_start, started_at, finished_at, total_vehicles, providers)
		VALUES (:run_id, :window_start, :started_at, :finished_at, :total_vehicles, :providers)`, run)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(counts) > 0 {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO area_counts (run_id, layer, area_id, location_key, count)
			VALUES (:run_id, :layer, :area_id, :location_key, :count)`, counts)
		if err != nil {
			return fmt.Errorf("insert area counts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.db.logger.Info("Run archived",
		zap.String("run_id", run.RunID),
		zap.Int("area_counts", len(counts)))

	return nil
}

func (r *archiveRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	runs := make([]domain.RunRecord, 0)
	err := r.db.SelectContext(ctx, &runs, `
		SELECT run_id, window_start, started_at, finished_at, total_vehicles, providers
		FROM scooter_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (r *archiveRepository) GetCounts(ctx context.Context, runID string, layer domain.LayerKind) ([]domain.AreaCountRecord, error) {
	counts := make([]domain.AreaCountRecord, 0)
	err := r.db.SelectContext(ctx, &counts, `
		SELECT run_id, layer, area_id, location_key, count
		FROM area_counts
		WHERE run_id = $1 AND layer = $2
		ORDER BY area_id`, runID, string(layer))
	if err != nil {
		return nil, fmt.Errorf("get counts: %w", err)
	}
	return counts, nil
}
