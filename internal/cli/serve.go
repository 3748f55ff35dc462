package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/deckgen/internal/adapters/http"
	mcpAdapter "github.com/aretw0/deckgen/pkg/adapters/mcp"
	"github.com/aretw0/deckgen/pkg/artifact"
	"github.com/aretw0/deckgen/pkg/styles"
)

// shutdownTimeout bounds how long in-flight requests may take after a stop signal.
const shutdownTimeout = 10 * time.Second

// RunServe listens on port (the configured one when zero) and serves until ctx is canceled.
func RunServe(ctx context.Context, app *App, port int) error {
	if port == 0 {
		port = app.Config.Server.Port
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	return Serve(ctx, app, ln)
}

// Serve runs the HTTP API and the artifact janitor on ln until ctx is canceled.
func Serve(ctx context.Context, app *App, ln net.Listener) error {
	gen, err := app.Generator(ctx, false)
	if err != nil {
		_ = ln.Close()
		return err
	}
	store, err := app.Store(ctx)
	if err != nil {
		_ = ln.Close()
		return err
	}

	if dir := app.Config.Styles.Dir; dir != "" && app.Config.Styles.Watch {
		if err := styles.Watch(ctx, dir, gen.Styles(), styles.WithLogger(app.Logger)); err != nil {
			app.Logger.Warn("style watcher disabled", "dir", dir, "err", err)
		}
	}

	go app.reloadOnHangup(ctx, gen.Styles())

	handler, err := httpAdapter.NewHandler(gen,
		httpAdapter.WithStore(store),
		httpAdapter.WithMetrics(app.Metrics),
		httpAdapter.WithLogger(app.Logger),
	)
	if err != nil {
		_ = ln.Close()
		return err
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	janitor := artifact.NewJanitor(store, app.Config.Output.SweepInterval, func(res artifact.SweepResult, err error) {
		app.Metrics.ObserveSweep(len(res.Removed), res.Failed)
		if len(res.Removed) > 0 {
			app.Logger.Info("artifacts swept", "removed", len(res.Removed), "scanned", res.Scanned)
		}
	})
	go janitor.Run(janitorCtx)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       app.Config.Server.ReadTimeout,
		WriteTimeout:      app.Config.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("deckgen server listening", "address", ln.Addr().String(), "output", store.Dir())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		app.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		app.Logger.Info("server stopped gracefully")
		return nil
	}
}

// reloadOnHangup reloads the configuration on every SIGHUP until ctx is done.
func (a *App) reloadOnHangup(ctx context.Context, catalog *styles.Catalog) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := a.Reload(ctx, catalog); err != nil {
				a.Logger.Warn("config reload failed, keeping current settings", "err", err)
			}
		}
	}
}

// Transports supported by RunMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// RunMCP serves the outline tools over the Model Context Protocol.
func RunMCP(ctx context.Context, app *App, transport string, port int) error {
	gen, err := app.Generator(ctx, false)
	if err != nil {
		return err
	}
	srv := mcpAdapter.NewServer(gen, app.Logger)

	switch transport {
	case TransportStdio:
		app.Logger.Info("starting mcp server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", transport, TransportStdio, TransportSSE)
	}
}
