package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api" json:"api"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// APIConfig holds the time-tracking API connection details
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Token   string        `mapstructure:"token" json:"token"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
	Color  bool   `mapstructure:"color" json:"color"`
}
