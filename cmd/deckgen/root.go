package main

import (
	"fmt"
	"os"

	"github.com/aretw0/deckgen/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "deckgen turns a topic into a presentation outline",
	Long: `deckgen asks an OpenAI-compatible language model for a slide outline,
validates and normalizes it, and renders it as PPTX or PDF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./deckgen.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// newApp builds the application from the global flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")

	app, err := cli.NewApp(cli.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	})
	if err != nil {
		return nil, err
	}
	app.Stdout = cmd.OutOrStdout()
	return app, nil
}

// addOutputFlags registers the flags shared by generate and validate.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("style", "s", "", "Presentation style (see 'deckgen styles')")
	cmd.Flags().StringP("format", "f", cli.FormatJSON, "Output: json, markdown, mermaid, pptx or pdf")
	cmd.Flags().StringP("out", "o", "", "Write pptx/pdf to this file instead of the output directory")
	cmd.Flags().Bool("notes", false, "Include speaker notes in the mermaid mindmap")
}

func outputOptions(cmd *cobra.Command) cli.OutputOptions {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	notes, _ := cmd.Flags().GetBool("notes")
	return cli.OutputOptions{Format: format, Out: out, Notes: notes}
}
