// Package config provides configuration parsing and management for treelab.
package config

import "time"

// Config holds the complete application configuration.
type Config struct {
	Tree    TreeConfig    `yaml:"tree"`
	Logging LogConfig     `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Shell   ShellConfig   `yaml:"shell"`
	Tracing TracingConfig `yaml:"tracing"`
}

// TreeConfig selects the active engine and its order.
type TreeConfig struct {
	Type     string `yaml:"type"`
	Order    int    `yaml:"order"`
	MinOrder int    `yaml:"minOrder"`
	MaxOrder int    `yaml:"maxOrder"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
	FeedBuffer   int           `yaml:"feedBuffer"`
}

// ShellConfig holds interactive shell configuration.
type ShellConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"historyFile"`
	Diff        bool   `yaml:"diff"`
}

// TracingConfig holds OpenTelemetry export configuration.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"serviceName"`
}
