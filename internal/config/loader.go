package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit path is given. Its absence is not an error.
const DefaultPath = "deckgen.yaml"

// Environment overrides, applied after the file.
var envOverrides = map[string]string{
	"DECKGEN_LLM_BASE_URL": "llm.base_url",
	"DECKGEN_LLM_API_KEY":  "llm.api_key",
	"DECKGEN_LLM_MODEL":    "llm.model",
	"DECKGEN_OUTPUT_DIR":   "output.dir",
	"DECKGEN_REDIS_ADDR":   "redis.addr",
	"DECKGEN_LOG_LEVEL":    "log.level",
}

// Loader reads the configuration file and keeps the last good result.
// It is safe for concurrent use.
type Loader struct {
	path     string
	optional bool
	getenv   func(string) string

	mu      sync.RWMutex
	current *Config
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnv replaces os.Getenv for override lookups.
func WithEnv(getenv func(string) string) LoaderOption {
	return func(l *Loader) {
		if getenv != nil {
			l.getenv = getenv
		}
	}
}

// NewLoader creates a Loader for path. An empty path reads DefaultPath if it exists.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{path: path, getenv: os.Getenv}
	if path == "" {
		l.path = DefaultPath
		l.optional = true
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the configuration, replacing the current one on success.
func (l *Loader) Load() (*Config, error) {
	raw := defaults()

	fileValues, err := l.readFile()
	if err != nil {
		return nil, err
	}
	mergeMaps(raw, fileValues)

	for env, path := range envOverrides {
		if v := l.getenv(env); v != "" {
			setPath(raw, path, v)
		}
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	l.mu.Lock()
	l.current = cfg
	l.mu.Unlock()
	return cfg, nil
}

// Reload re-reads the file. On failure the previous configuration stays current.
func (l *Loader) Reload() (*Config, error) {
	return l.Load()
}

// Current returns the last successfully loaded configuration, loading it on first use.
func (l *Loader) Current() (*Config, error) {
	l.mu.RLock()
	cfg := l.current
	l.mu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	return l.Load()
}

func (l *Loader) readFile() (map[string]any, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && l.optional {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.path, err)
	}
	return values, nil
}

func decode(raw map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeMaps deep-merges src into dst. Nested maps merge; everything else replaces.
func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				mergeMaps(dm, sm)
				continue
			}
		}
		if v == nil {
			continue
		}
		dst[k] = v
	}
}

func setPath(m map[string]any, path string, value any) {
	keys := strings.Split(path, ".")
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}
