package cli

import (
	"fmt"
	"os"

	"github.com/goliatone/go-projectgen/pkg/catalog"
	"github.com/goliatone/go-projectgen/pkg/wizard"
	"github.com/spf13/cobra"
)

func newRenderCmd(app *App) *cobra.Command {
	var set []string
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a template with placeholders substituted",
		Long: `Print a template file with every placeholder replaced. Placeholders
take their editor default unless overridden with --set key=value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(set)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			cat, err := catalog.Load(nil, "")
			if err != nil {
				return err
			}
			w, err := wizard.New(cat, wizard.WithLogger(app.Logger))
			if err != nil {
				return err
			}
			if err := w.LoadTemplate(args[0]); err != nil {
				return err
			}
			if err := applyAssignments(w, values); err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), w.Render(string(data)))
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&set, "set", "s", nil, "Placeholder value as key=value (repeatable)")
	return cmd
}
