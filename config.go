package datacat

import (
	"go.uber.org/zap"
)

// Config collects the workspace settings of the datacat tool, as read from
// its configuration file and environment by the CLI.
type Config struct {
	Collection string   `mapstructure:"collection" json:"collection,omitempty" yaml:"collection,omitempty"`
	CacheDir   string   `mapstructure:"cache-dir" json:"cache-dir,omitempty" yaml:"cache-dir,omitempty"`
	LogLevel   string   `mapstructure:"log-level" json:"log-level,omitempty" yaml:"log-level,omitempty"`
	Mirrors    []string `mapstructure:"mirrors" json:"mirrors,omitempty" yaml:"mirrors,omitempty"`

	logger *zap.Logger
}

// Logger yields the logger attached to this configuration
func (c *Config) Logger() *zap.Logger { return c.logger }

// NewConfig creates a configuration with an attached logger
func NewConfig(logs *zap.Logger) *Config {
	return &Config{
		logger: logs,
	}
}
