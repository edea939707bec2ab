package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg := buildConfig("")

	assert.Equal(t, 5000, cfg.Users)
	assert.Equal(t, 20000, cfg.Orders)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "shopping_db", cfg.MongoDatabase)
	assert.Equal(t, "benchmark.db", cfg.SQLitePath)
	assert.Equal(t, "tiny_benchmark.json", cfg.JSONPath)
}

func TestBuildConfigOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: 10\norders: 40\nseed: 7\n"), 0o644))

	cfg := buildConfig(path)

	assert.Equal(t, 10, cfg.Users)
	assert.Equal(t, 40, cfg.Orders)
	assert.Equal(t, int64(7), cfg.Seed)
	// Untouched fields keep their defaults.
	assert.Equal(t, defaultPostgres, cfg.Postgres)
}
