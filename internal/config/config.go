// Package config resolves deptlens settings from flags, DEPTLENS_*
// environment variables, an optional config.yaml and built-in defaults, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DEPTLENS"
	FileName  = "config.yaml"
)

const (
	KeyDataset     = "dataset"
	KeyDB          = "db"
	KeyLogFile     = "log_file"
	KeyLogLevel    = "log_level"
	KeyWindowYears = "window_years"
	KeyChart       = "chart"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"dataset":   KeyDataset,
	"db":        KeyDB,
	"log-file":  KeyLogFile,
	"log-level": KeyLogLevel,
	"window":    KeyWindowYears,
}

type Config struct {
	Dataset     string
	DBPath      string
	LogFile     string
	LogLevel    string
	WindowYears int
	// Chart overrides every panel's default style when set.
	Chart domain.ChartStyle
	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// DefaultDir returns ~/.deptlens, or .deptlens when the home directory is
// unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deptlens"
	}
	return filepath.Join(home, ".deptlens")
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDataset, "")
	v.SetDefault(KeyDB, filepath.Join(dir, "deptlens.db"))
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyWindowYears, dashboard.DefaultWindowYears)
	v.SetDefault(KeyChart, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration rooted at dir. flags may be nil; only flags the
// user actually set override lower layers.
func Load(dir string, flags *pflag.FlagSet) (Config, error) {
	v := newViper(dir)

	cfgPath := filepath.Join(dir, FileName)
	v.SetConfigFile(cfgPath)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", cfgPath, err)
		}
		cfgPath = ""
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		Dataset:     expandHome(v.GetString(KeyDataset)),
		DBPath:      expandHome(v.GetString(KeyDB)),
		LogFile:     expandHome(v.GetString(KeyLogFile)),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		WindowYears: v.GetInt(KeyWindowYears),
		Chart:       domain.ChartStyle(strings.ToLower(v.GetString(KeyChart))),
		ConfigFile:  cfgPath,
	}

	// Invalid values fall back to defaults.
	if cfg.WindowYears < 1 {
		cfg.WindowYears = dashboard.DefaultWindowYears
	}
	if cfg.Chart != "" && !cfg.Chart.Valid() {
		cfg.Chart = ""
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, "deptlens.db")
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
