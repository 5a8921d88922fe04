package boundaries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/scooter-map/internal/config"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	urls       map[domain.LayerKind]string
	cacheDir   string
	logger     *zap.Logger
}

// NewBoundaryClient создает источник границ: локальный файл <cacheDir>/<layer>.geojson,
// при его отсутствии - загрузка по URL с сохранением в cacheDir
func NewBoundaryClient(cfg *config.BoundaryConfig, logger *zap.Logger) repository.BoundarySource {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		urls: map[domain.LayerKind]string{
			domain.LayerZip:       cfg.ZipURL,
			domain.LayerWard:      cfg.WardURL,
			domain.LayerCommunity: cfg.CommunityURL,
		},
		cacheDir: cfg.CacheDir,
		logger:   logger,
	}
}

// Fetch возвращает сырой GeoJSON слоя
func (c *client) Fetch(ctx context.Context, kind domain.LayerKind) ([]byte, error) {
	url, ok := c.urls[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLayer, kind)
	}

	if data, ok := c.readCached(kind); ok {
		return data, nil
	}

	c.logger.Info("Downloading boundary layer",
		zap.String("layer", string(kind)),
		zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to download boundary layer", zap.String("layer", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBoundaryUnavailable, kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Boundary source returned error",
			zap.String("layer", string(kind)),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrBoundaryUnavailable, kind, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", domain.ErrBoundaryUnavailable, kind, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s: response is not valid JSON", domain.ErrBoundaryUnavailable, kind)
	}

	c.writeCached(kind, data)

	return data, nil
}

func (c *client) cachePath(kind domain.LayerKind) string {
	if c.cacheDir == "" {
		return ""
	}
	return filepath.Join(c.cacheDir, string(kind)+".geojson")
}

func (c *client) readCached(kind domain.LayerKind) ([]byte, bool) {
	path := c.cachePath(kind)
	if path == "" {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	if !json.Valid(data) {
		c.logger.Warn("Boundary cache file is corrupt, downloading again",
			zap.String("layer", string(kind)),
			zap.String("path", path))
		if err := os.Remove(path); err != nil {
			c.logger.Warn("Failed to remove boundary cache file", zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}

	c.logger.Debug("Boundary layer loaded from file",
		zap.String("layer", string(kind)),
		zap.String("path", path))
	return data, true
}

// writeCached пишет через временный файл + rename: файл слоя либо старый, либо целиком новый.
// Ошибка записи не фатальна, слой уже загружен.
func (c *client) writeCached(kind domain.LayerKind, data []byte) {
	path := c.cachePath(kind)
	if path == "" {
		return
	}

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		c.logger.Warn("Failed to create boundary cache dir", zap.String("dir", c.cacheDir), zap.Error(err))
		return
	}
	if err := writeFileAtomic(path, data); err != nil {
		c.logger.Warn("Failed to write boundary cache file", zap.String("path", path), zap.Error(err))
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
