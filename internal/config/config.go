package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Форматы окна снимков: SNAPSHOT_WINDOW=2020-09-08T19 соответствует префиксу <provider>/2020/09/08/19
const (
	WindowLayout       = "2006-01-02T15"
	WindowPrefixLayout = "2006/01/02/15"
)

type Config struct {
	Server      ServerConfig
	ObjectStore ObjectStoreConfig
	Snapshot    SnapshotConfig
	Pipeline    PipelineConfig
	Boundary    BoundaryConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Database    DatabaseConfig
	Archive     ArchiveConfig
	Refresh     RefreshConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
	Env  string
}

// ObjectStoreConfig - доступ к бакету со снимками (только list + get)
type ObjectStoreConfig struct {
	Bucket          string `validate:"required"`
	Region          string `validate:"required"`
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	Timeout         time.Duration `validate:"gt=0"`
}

type SnapshotConfig struct {
	Window         time.Time
	Providers      []ProviderConfig `validate:"required,min=1,dive"`
	IgnorePatterns []string
	MaxKeys        int32  `validate:"min=1,max=1000"`
	VehiclesKey    string `validate:"required"`
}

type ProviderConfig struct {
	Name  string `validate:"required"`
	Color string
}

type PipelineConfig struct {
	Workers             int `validate:"min=1"`
	RequireAllProviders bool
	TieBreak            string        `validate:"oneof=exclude first"`
	Timeout             time.Duration `validate:"gt=0"`
}

type BoundaryConfig struct {
	CacheDir     string
	ZipURL       string        `validate:"required,url"`
	WardURL      string        `validate:"required,url"`
	CommunityURL string        `validate:"required,url"`
	Timeout      time.Duration `validate:"gt=0"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	BoundaryCacheTTL time.Duration
	FigureCacheTTL   time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type ArchiveConfig struct {
	Enabled bool
}

type RefreshConfig struct {
	Enabled  bool
	Schedule string
}

type LogConfig struct {
	Level string
	File  string
}

const (
	defaultZipURL       = "https://data.cityofchicago.org/resource/unjd-c2ca.geojson"
	defaultWardURL      = "https://data.cityofchicago.org/resource/k9yb-bpqx.geojson"
	defaultCommunityURL = "https://data.cityofchicago.org/resource/igwz-8jzy.geojson"
)

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env опционален, переменные окружения достаточно
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	setDefaults()

	window, err := parseWindow(viper.GetString("SNAPSHOT_WINDOW"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		ObjectStore: ObjectStoreConfig{
			Bucket:          viper.GetString("S3_BUCKET"),
			Region:          viper.GetString("AWS_REGION"),
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
			UsePathStyle:    viper.GetBool("S3_USE_PATH_STYLE"),
			Timeout:         time.Duration(viper.GetInt("OBJECT_STORE_TIMEOUT")) * time.Second,
		},
		Snapshot: SnapshotConfig{
			Window:         window,
			Providers:      parseProviders(viper.GetString("SNAPSHOT_PROVIDERS")),
			IgnorePatterns: parseList(viper.GetString("SNAPSHOT_IGNORE_PATTERNS")),
			MaxKeys:        viper.GetInt32("SNAPSHOT_MAX_KEYS"),
			VehiclesKey:    viper.GetString("SNAPSHOT_VEHICLES_KEY"),
		},
		Pipeline: PipelineConfig{
			Workers:             viper.GetInt("PIPELINE_WORKERS"),
			RequireAllProviders: viper.GetBool("PIPELINE_REQUIRE_ALL_PROVIDERS"),
			TieBreak:            strings.ToLower(viper.GetString("AGGREGATE_TIE_BREAK")),
			Timeout:             time.Duration(viper.GetInt("PIPELINE_TIMEOUT")) * time.Second,
		},
		Boundary: BoundaryConfig{
			CacheDir:     viper.GetString("BOUNDARY_CACHE_DIR"),
			ZipURL:       viper.GetString("BOUNDARY_ZIP_URL"),
			WardURL:      viper.GetString("BOUNDARY_WARD_URL"),
			CommunityURL: viper.GetString("BOUNDARY_COMMUNITY_URL"),
			Timeout:      time.Duration(viper.GetInt("BOUNDARY_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			BoundaryCacheTTL: time.Duration(viper.GetInt("BOUNDARY_CACHE_TTL")) * time.Second,
			FigureCacheTTL:   time.Duration(viper.GetInt("FIGURE_CACHE_TTL")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Archive: ArchiveConfig{
			Enabled: viper.GetBool("ARCHIVE_ENABLED"),
		},
		Refresh: RefreshConfig{
			Enabled:  viper.GetBool("REFRESH_ENABLED"),
			Schedule: viper.GetString("REFRESH_SCHEDULE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
			File:  viper.GetString("LOG_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_HOST", "127.0.0.1")
	viper.SetDefault("API_PORT", 8050)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("OBJECT_STORE_TIMEOUT", 30)
	viper.SetDefault("SNAPSHOT_WINDOW", "2020-09-08T19")
	viper.SetDefault("SNAPSHOT_PROVIDERS", "lime:gold,bird:steelblue")
	viper.SetDefault("SNAPSHOT_IGNORE_PATTERNS", "samplestring")
	viper.SetDefault("SNAPSHOT_MAX_KEYS", 1000)
	viper.SetDefault("SNAPSHOT_VEHICLES_KEY", "bikes")
	viper.SetDefault("PIPELINE_WORKERS", 2)
	viper.SetDefault("PIPELINE_TIMEOUT", 300)
	viper.SetDefault("AGGREGATE_TIE_BREAK", "exclude")
	viper.SetDefault("BOUNDARY_CACHE_DIR", "data")
	viper.SetDefault("BOUNDARY_ZIP_URL", defaultZipURL)
	viper.SetDefault("BOUNDARY_WARD_URL", defaultWardURL)
	viper.SetDefault("BOUNDARY_COMMUNITY_URL", defaultCommunityURL)
	viper.SetDefault("BOUNDARY_TIMEOUT", 60)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("BOUNDARY_CACHE_TTL", 24*60*60)
	viper.SetDefault("FIGURE_CACHE_TTL", 60*60)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 5)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 2)
	viper.SetDefault("REFRESH_SCHEDULE", "@every 15m")
	viper.SetDefault("LOG_LEVEL", "info")
}

// Validate проверяет конфигурацию по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func parseWindow(s string) (time.Time, error) {
	t, err := time.Parse(WindowLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SNAPSHOT_WINDOW %q (expected %s): %w", s, WindowLayout, err)
	}
	return t.UTC(), nil
}

// parseProviders разбирает строку вида "lime:gold,bird:steelblue"
func parseProviders(s string) []ProviderConfig {
	items := parseList(s)
	result := make([]ProviderConfig, 0, len(items))
	for _, item := range items {
		name, color, _ := strings.Cut(item, ":")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		result = append(result, ProviderConfig{Name: name, Color: strings.TrimSpace(color)})
	}
	return result
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// WindowPrefix возвращает часть ключа объекта для окна снимков
func (c *Config) WindowPrefix() string {
	return c.Snapshot.Window.Format(WindowPrefixLayout)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения к архиву прогонов
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
