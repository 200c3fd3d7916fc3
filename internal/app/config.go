package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/saadjs/lifelog/internal/metrics"
)

const (
	EnvDBPath   = "LIFELOG_DB"
	EnvLogLevel = "LIFELOG_LOG_LEVEL"
	EnvLogJSON  = "LIFELOG_LOG_JSON"
	EnvLogFile  = "LIFELOG_LOG_FILE"
	EnvConfig   = "LIFELOG_CONFIG"
)

// Config is the process-level configuration. Per-database preferences live in
// the app_config table instead.
type Config struct {
	DBPath     string `toml:"db_path"`
	LogLevel   string `toml:"log_level"`
	LogJSON    bool   `toml:"log_json"`
	LogFile    string `toml:"log_file"`
	SeriesDays int    `toml:"series_days"`
}

// LoadDotEnv reads .env from the working directory when present.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ResolveConfigPath picks the explicit path, then LIFELOG_CONFIG, then the default location.
func ResolveConfigPath(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	return DefaultConfigPath()
}

// LoadConfig decodes the TOML file at path, then applies environment overrides.
// A missing file yields defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	// Zero leaves the series length to the database preference.
	if cfg.SeriesDays < 0 || cfg.SeriesDays > metrics.MaxSeriesDays {
		return Config{}, fmt.Errorf("series_days must be between 1 and %d", metrics.MaxSeriesDays)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogJSON)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q", EnvLogJSON, v)
		}
		cfg.LogJSON = b
	}
	return nil
}
