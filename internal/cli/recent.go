package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRecentCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently created projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = app.Store.Settings().History.Limit
			}

			hist, err := app.History()
			if err != nil {
				return err
			}
			defer hist.Close()

			records, err := hist.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, err := fmt.Fprintln(out, mutedStyle.Render("No projects created yet"))
				return err
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Name,
					rec.Template,
					rec.CreatedAt.Format(time.RFC822),
					rec.File,
				})
			}
			return writeTable(out, []string{"NAME", "TEMPLATE", "CREATED", "FILE"}, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of projects to show (0 for all, defaults to history.limit)")
	return cmd
}
