package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Defaults for a local LM Studio endpoint.
const (
	DefaultBaseURL     = "http://127.0.0.1:1234/v1"
	DefaultAPIKey      = "NO_NEED_IF_USING_LMSTUDIO"
	DefaultModel       = "qwen2.5-7b-instruct-1m"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
	DefaultTimeout     = 60 * time.Second
)

// Config configures the OpenAI-compatible adapter.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultConfig returns the local-endpoint defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		APIKey:      DefaultAPIKey,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.APIKey == "" {
		c.APIKey = d.APIKey
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.MaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}

// ChatModel is the subset of an eino chat model the adapter needs.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Adapter is a Client backed by an eino chat model.
type Adapter struct {
	model  ChatModel
	cfg    Config
	logger *slog.Logger
}

// NewOpenAI creates an Adapter talking to an OpenAI-compatible endpoint.
func NewOpenAI(ctx context.Context, cfg Config, opts ...Option) (*Adapter, error) {
	cfg = cfg.withDefaults()

	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create chat model: %w", err)
	}
	return NewAdapter(chat, cfg, opts...), nil
}

// NewAdapter wraps an existing chat model.
func NewAdapter(chat ChatModel, cfg Config, opts ...Option) *Adapter {
	a := &Adapter{
		model:  chat,
		cfg:    cfg.withDefaults(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the effective configuration.
func (a *Adapter) Config() Config {
	return a.cfg
}

// Outline sends the system prompt and topic and returns the trimmed answer.
// The call is bounded by the configured timeout and is never retried.
func (a *Adapter) Outline(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.model.Generate(ctx, Messages(req),
		model.WithModel(a.cfg.Model),
		model.WithTemperature(a.cfg.Temperature),
		model.WithMaxTokens(a.cfg.MaxTokens),
	)
	elapsed := time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		a.logger.Error("LLM request failed", "endpoint", a.cfg.BaseURL, "model", a.cfg.Model, "elapsed", elapsed, "error", err)
		return "", &ConnectionError{Endpoint: a.cfg.BaseURL, Err: err}
	}

	content := ""
	if resp != nil {
		content = strings.TrimSpace(resp.Content)
	}
	if content == "" {
		a.logger.Error("LLM returned an empty response", "endpoint", a.cfg.BaseURL, "model", a.cfg.Model)
		return "", &ConnectionError{Endpoint: a.cfg.BaseURL, Err: ErrEmptyResponse}
	}

	a.logger.Info("received response from LLM", "model", a.cfg.Model, "elapsed", elapsed, "bytes", len(content))
	a.logger.Debug("raw LLM response", "content", content)
	return content, nil
}
