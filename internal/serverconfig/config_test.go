package serverconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsEmptyAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalogue.DSN = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveConcurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BatchConcurrency = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := "server:\n  addr: \":9090\"\ncatalogue:\n  dsn: \"custom.db\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "custom.db", cfg.Catalogue.DSN)
	// Fields omitted from the YAML keep their defaults.
	assert.Equal(t, DefaultConfig().Server.BatchConcurrency, cfg.Server.BatchConcurrency)
	assert.Equal(t, DefaultConfig().Log.Level, cfg.Log.Level)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}
