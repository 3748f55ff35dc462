package config

import (
	"time"

	"github.com/aretw0/deckgen/pkg/llm"
)

// Config is the complete runtime configuration.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm" json:"llm"`
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
	Styles StylesConfig `mapstructure:"styles" yaml:"styles" json:"styles"`
	Redis  RedisConfig  `mapstructure:"redis" yaml:"redis" json:"redis"`
	Log    LogConfig    `mapstructure:"log" yaml:"log" json:"log"`
}

// LLMConfig configures the chat-completions endpoint.
type LLMConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key" json:"-"`
	Model       string        `mapstructure:"model" yaml:"model" json:"model"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature" json:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens" json:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	Retry       RetryConfig   `mapstructure:"retry" yaml:"retry" json:"retry"`
}

// RetryConfig bounds retries of connection failures. One attempt disables retrying.
type RetryConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts" yaml:"max_attempts" json:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval" yaml:"initial_interval" json:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval" yaml:"max_interval" json:"max_interval"`
}

// OutputConfig configures the artifact directory and its retention.
type OutputConfig struct {
	Dir           string        `mapstructure:"dir" yaml:"dir" json:"dir"`
	Retention     time.Duration `mapstructure:"retention" yaml:"retention" json:"retention"`
	Keep          int           `mapstructure:"keep" yaml:"keep" json:"keep"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval" json:"sweep_interval"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port         int           `mapstructure:"port" yaml:"port" json:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
}

// StylesConfig points at an optional directory of style documents.
type StylesConfig struct {
	Dir   string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Watch bool   `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// RedisConfig enables the distributed sweep lock when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr" json:"addr"`
	Password string `mapstructure:"password" yaml:"password" json:"-"`
	DB       int    `mapstructure:"db" yaml:"db" json:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// Client returns the adapter configuration.
func (c LLMConfig) Client() llm.Config {
	return llm.Config{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.Model,
		Temperature: float32(c.Temperature),
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
	}
}

// Policy returns the retry policy for llm.WithRetry.
func (c RetryConfig) Policy() llm.RetryPolicy {
	return llm.RetryPolicy{
		MaxAttempts:     c.MaxAttempts,
		InitialInterval: c.InitialInterval,
		MaxInterval:     c.MaxInterval,
	}
}

// defaults mirrors Config with the built-in values. Durations are strings so the
// same decode hook handles defaults and file values.
func defaults() map[string]any {
	return map[string]any{
		"llm": map[string]any{
			"base_url":    llm.DefaultBaseURL,
			"api_key":     llm.DefaultAPIKey,
			"model":       llm.DefaultModel,
			"temperature": llm.DefaultTemperature,
			"max_tokens":  llm.DefaultMaxTokens,
			"timeout":     "60s",
			"retry": map[string]any{
				"max_attempts":     1,
				"initial_interval": "500ms",
				"max_interval":     "10s",
			},
		},
		"output": map[string]any{
			"dir":            "presentations",
			"retention":      "1h",
			"keep":           20,
			"sweep_interval": "10m",
		},
		"server": map[string]any{
			"port":          5000,
			"read_timeout":  "15s",
			"write_timeout": "90s",
		},
		"styles": map[string]any{
			"dir":   "",
			"watch": false,
		},
		"redis": map[string]any{
			"addr":     "",
			"password": "",
			"db":       0,
			"prefix":   "deckgen:",
		},
		"log": map[string]any{
			"level":  "info",
			"format": "text",
			"file":   "",
		},
	}
}
