package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := def()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DBURL)
	assert.Equal(t, "schemas", cfg.SchemasDir)
	assert.Equal(t, "reference/lookups", cfg.LookupsDir)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"port":"9090","dbUrl":"user:pass@tcp(localhost:3306)/kontora"}`), 0o644))

	cfg, err := loadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "user:pass@tcp(localhost:3306)/kontora", cfg.DBURL)
	// незатронутые поля остаются при умолчаниях
	assert.Equal(t, "schemas", cfg.SchemasDir)
}

func TestGetenv(t *testing.T) {
	t.Setenv("KONTORA_TEST_KEY", "value")
	assert.Equal(t, "value", getenv("KONTORA_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getenv("KONTORA_TEST_MISSING", "fallback"))

	// пустое значение переменной — как отсутствующее
	t.Setenv("KONTORA_TEST_EMPTY", "  ")
	assert.Equal(t, "fallback", getenv("KONTORA_TEST_EMPTY", "fallback"))
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Config{Port: "8080"}.Addr())
	assert.Equal(t, ":8080", Config{}.Addr())
	assert.Equal(t, "0.0.0.0:9090", Config{Port: "0.0.0.0:9090"}.Addr())
}
