package main

import (
	"strings"

	"github.com/aretw0/deckgen/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a presentation about a topic",
	Long: `Asks the language model for an outline about the topic and prints it.
With --format pptx or pdf the deck is rendered into the output directory
(or --out) and its path is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		style, _ := cmd.Flags().GetString("style")

		ctx := cli.NewSignalContext(contextOrBackground(cmd))
		defer ctx.Cancel()

		return cli.HandleExecutionError(cli.RunGenerate(ctx, app, cli.GenerateOptions{
			Topic:         strings.Join(args, " "),
			Style:         style,
			OutputOptions: outputOptions(cmd),
		}))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate saved model output without calling the model",
	Long: `Runs extraction, normalization and validation over raw model text read
from a file (or stdin when the file is omitted or '-') and prints the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		style, _ := cmd.Flags().GetString("style")
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		return cli.RunValidate(contextOrBackground(cmd), app, cmd.InOrStdin(), cli.ValidateOptions{
			Path:          path,
			Style:         style,
			OutputOptions: outputOptions(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)

	addOutputFlags(generateCmd)
	addOutputFlags(validateCmd)
}
