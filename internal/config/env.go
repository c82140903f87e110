package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Env holds the runtime switches read from the environment.
type Env struct {
	APIURL          string        `env:"WMB_API_URL" envDefault:"https://wurstmineberg.de/api/v3"`
	LogLevel        string        `env:"WMB_LOG_LEVEL" envDefault:"error"`
	DebugLogEnabled bool          `env:"WMB_DEBUG_LOG" envDefault:"false"`
	HTTPTimeout     time.Duration `env:"WMB_HTTP_TIMEOUT" envDefault:"30s"`
	TrayInterval    time.Duration `env:"WMB_TRAY_INTERVAL" envDefault:"45s"`
}

func LoadEnv() (Env, error) {
	var cfg Env
	if errParse := env.Parse(&cfg); errParse != nil {
		return Env{}, errors.Wrap(errParse, "Failed to parse environment")
	}

	if cfg.HTTPTimeout <= 0 {
		return Env{}, errors.New("WMB_HTTP_TIMEOUT must be positive")
	}

	if cfg.TrayInterval <= 0 {
		return Env{}, errors.New("WMB_TRAY_INTERVAL must be positive")
	}

	return cfg, nil
}
