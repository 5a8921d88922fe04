package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("S3_BUCKET", "scooter-snapshots")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "scooter-snapshots", cfg.ObjectStore.Bucket)
	assert.Equal(t, "us-east-1", cfg.ObjectStore.Region)
	assert.Equal(t, 30*time.Second, cfg.ObjectStore.Timeout)
	assert.Equal(t, []ProviderConfig{
		{Name: "lime", Color: "gold"},
		{Name: "bird", Color: "steelblue"},
	}, cfg.Snapshot.Providers)
	assert.Equal(t, []string{"samplestring"}, cfg.Snapshot.IgnorePatterns)
	assert.Equal(t, int32(1000), cfg.Snapshot.MaxKeys)
	assert.Equal(t, "bikes", cfg.Snapshot.VehiclesKey)
	assert.Equal(t, "exclude", cfg.Pipeline.TieBreak)
	assert.Equal(t, "2020/09/08/19", cfg.WindowPrefix())
	assert.Equal(t, "127.0.0.1:8050", cfg.GetServerAddr())
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Archive.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("S3_BUCKET", "b")
	t.Setenv("SNAPSHOT_WINDOW", "2021-01-02T03")
	t.Setenv("SNAPSHOT_PROVIDERS", " Spin , lime:gold ")
	t.Setenv("AGGREGATE_TIE_BREAK", "FIRST")
	t.Setenv("PIPELINE_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2021/01/02/03", cfg.WindowPrefix())
	assert.Equal(t, []ProviderConfig{{Name: "spin"}, {Name: "lime", Color: "gold"}}, cfg.Snapshot.Providers)
	assert.Equal(t, "first", cfg.Pipeline.TieBreak)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing bucket",
			env:  map[string]string{},
			want: "Bucket",
		},
		{
			name: "unknown tie break",
			env:  map[string]string{"S3_BUCKET": "b", "AGGREGATE_TIE_BREAK": "random"},
			want: "TieBreak",
		},
		{
			name: "bad window",
			env:  map[string]string{"S3_BUCKET": "b", "SNAPSHOT_WINDOW": "yesterday"},
			want: "SNAPSHOT_WINDOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConnectionStrings(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "scooter_map", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=scooter_map sslmode=disable", db.DSN())

	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
