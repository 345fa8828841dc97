package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	projectgen "github.com/goliatone/go-projectgen"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the projgen command tree.
func NewRootCmd(options ...Option) *cobra.Command {
	app := &App{bundled: projectgen.EmbeddedTemplates()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(app)
	}

	rootCmd := &cobra.Command{
		Use:   "projgen",
		Short: "Create projects from templates",
		Long: `projgen instantiates project files from text templates.

Templates hold placeholders written as ${{name type:default}}. Each
placeholder becomes a prompt chosen by its type (string, items, text,
secret, bool) and the answers are substituted back into the template.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Settings file (defaults to <workspace>/projgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&app.logFile, "log-file", "", "Log file path (defaults to stderr)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.initialize(cmd.ErrOrStderr())
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newNewCmd(app),
		newTemplatesCmd(app),
		newRenderCmd(app),
		newConfigCmd(app),
		newRecentCmd(app),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
