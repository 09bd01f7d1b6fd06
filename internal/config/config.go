package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/venvlink/venvlink/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config holds every tunable of a run.
type Config struct {
	VenvCommand   []string `mapstructure:"venv_command"`
	SyncCommand   []string `mapstructure:"sync_command"`
	Sync          bool     `mapstructure:"sync"`
	SyncMarkers   []string `mapstructure:"sync_markers"`
	Python        string   `mapstructure:"python"`
	PythonVersion string   `mapstructure:"python_version"`
	DryRun        bool     `mapstructure:"dry_run"`
	Strict        bool     `mapstructure:"strict"`
	Lock          bool     `mapstructure:"lock"`
	LogLevel      string   `mapstructure:"log_level"`
}

// Dir returns the path to the config directory (~/.venvlink/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.venvlink/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("venv_command", []string{"uv", "venv"})
	v.SetDefault("sync_command", []string{"uv", "sync"})
	v.SetDefault("sync", true)
	v.SetDefault("sync_markers", []string{"pyproject.toml"})
	v.SetDefault("python", "python3")
	v.SetDefault("python_version", "")
	v.SetDefault("dry_run", false)
	v.SetDefault("strict", false)
	v.SetDefault("lock", false)
	v.SetDefault("log_level", "warn")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg, err := decode(viper.New())
	if err != nil {
		// Defaults are static; a decode failure is a programming error.
		panic(err)
	}
	return cfg
}

// Load reads and validates the config file at path. A missing file yields
// the defaults. Environment variables are not consulted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &ValidationError{Path: path, Issues: result.Issues}
	}

	v := viper.New()
	v.SetConfigType(fileType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
