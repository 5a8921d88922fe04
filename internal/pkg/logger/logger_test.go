package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	log, err := New("warn", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1)) // debug
	assert.True(t, log.Core().Enabled(1))   // warn

	log, err = New("not-a-level", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(0)) // info fallback
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.log")

	log, err := New("info", path)
	require.NoError(t, err)

	log.Info("pipeline finished")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pipeline finished")
}
