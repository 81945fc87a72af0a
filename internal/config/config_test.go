package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/protview/pkg/source"
)

func TestDefaults(t *testing.T) {
	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.False(t, cfg.MockMode)
	assert.Equal(t, "./public", cfg.FixtureDir)
	assert.Equal(t, "http://localhost:8000", cfg.RegistryURL)
	assert.Equal(t, "http://localhost:8081", cfg.CorrelationURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint64(2), cfg.MaxRetries)
	assert.Equal(t, 0.4, cfg.MinJaccard)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PROTVIEW_MOCK_MODE", "true")
	t.Setenv("PROTVIEW_REGISTRY_URL", "http://registry:9000")
	t.Setenv("PROTVIEW_REQUEST_TIMEOUT", "750ms")
	t.Setenv("PROTVIEW_CONCURRENCY", "0")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.True(t, cfg.MockMode)
	assert.Equal(t, "http://registry:9000", cfg.RegistryURL)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.Concurrency, "non-positive concurrency is clamped")
}

func TestValidateViewer(t *testing.T) {
	t.Run("live mode needs http base urls", func(t *testing.T) {
		cfg := &Config{RegistryURL: "ftp://x", CorrelationURL: "http://", RequestTimeout: time.Second}
		err := cfg.ValidateViewer()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry url")
		assert.Contains(t, err.Error(), "correlation url")
	})

	t.Run("mock mode needs the fixture file", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &Config{MockMode: true, FixtureDir: dir, RequestTimeout: time.Second}
		require.Error(t, cfg.ValidateViewer())

		require.NoError(t, os.WriteFile(filepath.Join(dir, source.ProteinsFixture), []byte("[]"), 0o644))
		require.NoError(t, cfg.ValidateViewer())
	})
}

func TestValidateRegistry(t *testing.T) {
	cfg := &Config{DBPath: "x.db", MinJaccard: 1.5}
	require.Error(t, cfg.ValidateRegistry())

	cfg.MinJaccard = 0.4
	require.NoError(t, cfg.ValidateRegistry())

	cfg.ImportPath = filepath.Join(t.TempDir(), "missing.tsv")
	require.Error(t, cfg.ValidateRegistry())
}
