package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/internal/config"
	"github.com/aretw0/deckgen/internal/logging"
	"github.com/aretw0/deckgen/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/deckgen/pkg/adapters/redis"
	"github.com/aretw0/deckgen/pkg/artifact"
	"github.com/aretw0/deckgen/pkg/llm"
	"github.com/aretw0/deckgen/pkg/observability"
	"github.com/aretw0/deckgen/pkg/ports"
	"github.com/aretw0/deckgen/pkg/styles"
)

// errOffline is returned by the client of commands that never call the model.
var errOffline = errors.New("language model disabled for this command")

// Options are the global command line settings.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// App carries the configuration and shared services of one command run.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Stdout  io.Writer

	opts      Options
	loader    *config.Loader
	level     *slog.LevelVar
	newClient func(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (llm.Client, error)
	locker    ports.Locker
	closers   []io.Closer
}

// NewApp loads the configuration and builds the logger.
// Flags in opts take precedence over the file and environment.
func NewApp(opts Options) (*App, error) {
	loader := config.NewLoader(opts.ConfigPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	opts.apply(cfg)

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	logger, closer, err := logging.NewWithOptions(logging.Options{
		Level:  levelVar,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   observability.NewMetrics(),
		Stdout:    os.Stdout,
		opts:      opts,
		loader:    loader,
		level:     levelVar,
		newClient: newOpenAIClient,
		closers:   []io.Closer{closer},
	}, nil
}

func (o Options) apply(cfg *config.Config) {
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
}

// Reload re-reads the configuration file and applies what can change without a
// restart: the log level and the styles held by catalog. Other settings keep
// their startup values. On error nothing is applied.
func (a *App) Reload(ctx context.Context, catalog *styles.Catalog) error {
	cfg, err := a.loader.Reload()
	if err != nil {
		return err
	}
	a.opts.apply(cfg)

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	loaded, err := styles.Load(ctx, cfg.Styles.Dir, styles.WithLogger(a.Logger))
	if err != nil {
		return fmt.Errorf("failed to load styles from %q: %w", cfg.Styles.Dir, err)
	}

	a.level.Set(level)
	catalog.Replace(loaded)
	a.Logger.Info("configuration reloaded", "path", a.loader.Path(), "log_level", level, "styles", len(loaded.Names()))
	return nil
}

// Close releases everything the app opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newOpenAIClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (llm.Client, error) {
	adapter, err := llm.NewOpenAI(ctx, cfg.Client(), llm.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return llm.WithRetry(adapter, cfg.Retry.Policy(), logger), nil
}

// Styles loads the configured style catalog.
func (a *App) Styles(ctx context.Context) (*styles.Catalog, error) {
	catalog, err := styles.Load(ctx, a.Config.Styles.Dir, styles.WithLogger(a.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load styles from %q: %w", a.Config.Styles.Dir, err)
	}
	return catalog, nil
}

// Generator builds the pipeline. An offline generator runs every stage except the model call.
func (a *App) Generator(ctx context.Context, offline bool) (*deckgen.Generator, error) {
	catalog, err := a.Styles(ctx)
	if err != nil {
		return nil, err
	}

	var client llm.Client = llm.ClientFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "", errOffline
	})
	if !offline {
		client, err = a.newClient(ctx, a.Config.LLM, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create llm client: %w", err)
		}
	}

	return deckgen.New(client,
		deckgen.WithLogger(a.Logger),
		deckgen.WithStyles(catalog),
		deckgen.WithMetrics(a.Metrics),
	)
}

// Store opens the artifact store. Sweeps are serialized through a Redis lock
// when redis.addr is set and through an in-process lock otherwise.
func (a *App) Store(ctx context.Context) (*artifact.Store, error) {
	locker, err := a.sweepLocker(ctx)
	if err != nil {
		return nil, err
	}

	out := a.Config.Output
	return artifact.New(out.Dir,
		artifact.WithLogger(a.Logger),
		artifact.WithLocker(locker),
		artifact.WithRetention(out.Retention),
		artifact.WithKeep(out.Keep),
	), nil
}

func (a *App) sweepLocker(ctx context.Context) (ports.Locker, error) {
	if a.locker != nil {
		return a.locker, nil
	}

	addr := a.Config.Redis.Addr
	if addr == "" {
		a.locker = memory.NewLocker()
		return a.locker, nil
	}

	client, err := redisAdapter.NewClient(ctx, addr, a.Config.Redis.Password, a.Config.Redis.DB)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client)
	a.locker = redisAdapter.NewLocker(client, a.Config.Redis.Prefix)
	a.Logger.Debug("using redis sweep lock", "addr", addr)
	return a.locker, nil
}
