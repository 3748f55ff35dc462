package main

import (
	"context"
	"os"
	"strings"

	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/internal/cli"
	"github.com/aretw0/deckgen/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API (generate, export, download, styles) together with the
janitor that sweeps old exports from the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		port, _ := cmd.Flags().GetInt("port")

		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(deckgen.Version))
		}

		ctx := cli.NewSignalContext(contextOrBackground(cmd))
		defer ctx.Cancel()

		err = cli.RunServe(ctx, app, port)
		if sig := ctx.Signal(); sig != nil {
			app.Logger.Info("stopped by signal", "signal", sig.String())
		}
		return err
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the generate_outline and validate_outline tools and the
deckgen://styles resource to MCP clients.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		ctx := cli.NewSignalContext(contextOrBackground(cmd))
		defer ctx.Cancel()

		return cli.HandleExecutionError(cli.RunMCP(ctx, app, transport, port))
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired exports from the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RunCleanup(contextOrBackground(cmd), app)
	},
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available presentation styles",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RunStyles(contextOrBackground(cmd), app)
	},
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(stylesCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config, 5000)")

	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
