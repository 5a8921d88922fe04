package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scooter-map/internal/app"
	"github.com/scooter-map/internal/config"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/pkg/logger"
	"go.uber.org/zap"
)

// Разовый прогон за SNAPSHOT_WINDOW: счетчики по слоям в лог, архив в PostgreSQL при ARCHIVE_ENABLED=true.
// Код выхода 1 при фатальной ошибке прогона.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.Log.Level, cfg.Log.File)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("Pipeline run failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	deps, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	result, err := deps.Pipeline.Run(ctx)
	if err != nil {
		return err
	}

	for _, kind := range domain.AllLayers() {
		layer, ok := result.Layers[kind]
		if !ok {
			continue
		}
		total := 0
		for _, c := range layer.Counts.Counts {
			total += c.Count
		}
		log.Info("Layer summary",
			zap.String("layer", kind.Label()),
			zap.Int("areas", len(layer.Counts.Counts)),
			zap.Int("min", layer.Counts.Min),
			zap.Int("max", layer.Counts.Max),
			zap.Int("total", total),
			zap.Int("unmatched", layer.Counts.Unmatched),
			zap.Int("ambiguous", layer.Counts.Ambiguous),
		)
	}

	log.Info("Run complete",
		zap.String("run_id", result.RunID),
		zap.Int("vehicles", result.Inventory.Total),
		zap.Strings("excluded", result.Excluded),
		zap.Bool("archive_enabled", deps.Archive != nil),
	)
	return nil
}
