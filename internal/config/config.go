package config

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string `json:"port"`

	// MySQL DSN; пусто = только dry-run (SQL наружу без исполнения)
	DBURL string `json:"dbUrl"`

	// Папки с YAML-оверлеями: дополнительные сущности и справочники
	SchemasDir string `json:"schemasDir"`
	LookupsDir string `json:"lookupsDir"`

	GinMode string `json:"ginMode"` // debug | release | test
}

func def() Config {
	return Config{
		Port:       "8080",
		DBURL:      "",
		SchemasDir: "schemas",
		LookupsDir: "reference/lookups",
		GinMode:    "release",
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// LoadWithPath читает JSON по указанному пути, потом применяет ENV и флаги.
func LoadWithPath(jsonPath string) Config {
	cfg := def()

	// JSON (если файл существует)
	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if c2, err := loadJSON(jsonPath); err == nil {
			cfg = c2
		}
	}

	// ENV overrides
	cfg.Port = getenv("KONTORA_PORT", cfg.Port)
	cfg.DBURL = getenv("KONTORA_DB_URL", cfg.DBURL)
	cfg.SchemasDir = getenv("KONTORA_SCHEMAS_DIR", cfg.SchemasDir)
	cfg.LookupsDir = getenv("KONTORA_LOOKUPS_DIR", cfg.LookupsDir)
	cfg.GinMode = getenv("KONTORA_GIN_MODE", cfg.GinMode)

	// Flags overrides; свой FlagSet, чтобы перечитывание -config не
	// спотыкалось о повторную регистрацию флагов
	fs := flag.NewFlagSet("kontora", flag.ExitOnError)
	configPath := fs.String("config", jsonPath, "Path to config JSON")
	port := fs.String("port", cfg.Port, "HTTP port")
	dbURL := fs.String("db", cfg.DBURL, "MySQL DSN (empty = dry-run only)")
	schemasDir := fs.String("schemas", cfg.SchemasDir, "Path to entity-config overlays")
	lookupsDir := fs.String("lookups", cfg.LookupsDir, "Path to lookup-catalog overlays")
	ginMode := fs.String("gin-mode", cfg.GinMode, "gin mode (debug/release/test)")

	_ = fs.Parse(os.Args[1:])

	// Если через флаг передали другой конфиг — перечитаем
	if *configPath != jsonPath {
		return LoadWithPath(*configPath)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DBURL = strings.TrimSpace(*dbURL)
	cfg.SchemasDir = strings.TrimSpace(*schemasDir)
	cfg.LookupsDir = strings.TrimSpace(*lookupsDir)
	cfg.GinMode = strings.TrimSpace(*ginMode)

	return cfg
}

// Load — конфиг по умолчанию рядом с бинарём
func Load() Config {
	return LoadWithPath("config.json")
}

// Addr возвращает адрес для listen; голый порт дополняем двоеточием
func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if p == "" {
		p = "8080"
	}
	if _, err := strconv.Atoi(p); err == nil {
		return ":" + p
	}
	return p
}
