// Package config loads server settings from the environment. There is no
// configuration file on purpose, the dispatcher carries no persisted state.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config holds everything the cmd entrypoint needs to stand the server up.
type Config struct {
	Address   string `env:"SLEIPNIR_ADDRESS" envDefault:"127.0.0.1"`
	Port      int    `env:"SLEIPNIR_PORT" envDefault:"9090"`
	Workers   int    `env:"SLEIPNIR_WORKERS" envDefault:"4"`
	QueueSize int    `env:"SLEIPNIR_QUEUE_SIZE" envDefault:"64"`

	LogLevel      string `env:"SLEIPNIR_LOG_LEVEL" envDefault:"info"`
	LogFilePath   string `env:"SLEIPNIR_LOG_FILE" envDefault:""`
	LogMaxSizeMB  int    `env:"SLEIPNIR_LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"SLEIPNIR_LOG_MAX_BACKUPS" envDefault:"10"`
	LogCompress   bool   `env:"SLEIPNIR_LOG_COMPRESS" envDefault:"true"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse environment")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.Newf("port out of range: %d", c.Port)
	}
	if c.Workers < 1 {
		return errors.Newf("worker count must be positive, got %d", c.Workers)
	}
	if c.QueueSize < 1 {
		return errors.Newf("queue size must be positive, got %d", c.QueueSize)
	}
	return nil
}
