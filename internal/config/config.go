// Package config loads the applist configuration from defaults, an optional
// config file, APPLIST_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leonhh/applist/internal/dispatch"
	"github.com/leonhh/applist/internal/icon"
	"github.com/leonhh/applist/internal/models"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. APPLIST_ICON_SIZE
const EnvPrefix = "APPLIST"

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"registry":    "registry",
	"icon-size":   "icon.size",
	"cpu-workers": "workers.cpu",
	"io-workers":  "workers.io",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *models.Config {
	return &models.Config{
		Icon: models.IconConfig{Size: icon.DefaultSize},
		Workers: models.WorkersConfig{
			CPU: runtime.GOMAXPROCS(0),
			IO:  dispatch.DefaultIOWorkers,
		},
		Log: models.LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. configFile may be empty; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*models.Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("registry", defaults.Registry)
	v.SetDefault("icon.size", defaults.Icon.Size)
	v.SetDefault("workers.cpu", defaults.Workers.CPU)
	v.SetDefault("workers.io", defaults.Workers.IO)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &models.IntrospectError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("failed to read config %s: %w", configFile, err),
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, &models.IntrospectError{Type: models.ErrInvalidConfig, Err: err}
				}
			}
		}
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &models.IntrospectError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to decode config: %w", err),
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *models.Config) error {
	if cfg.Icon.Size <= 0 {
		return &models.IntrospectError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("icon.size must be positive, got %d", cfg.Icon.Size),
		}
	}
	if cfg.Workers.CPU < 0 || cfg.Workers.IO < 0 {
		return &models.IntrospectError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("worker counts must not be negative"),
		}
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return &models.IntrospectError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown log format %q", cfg.Log.Format),
		}
	}
	return nil
}
