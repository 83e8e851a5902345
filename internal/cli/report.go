package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize the tasks of the selected board",
		Args:  cobra.NoArgs,
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			if err := app.openBoard(ctx); err != nil {
				return err
			}

			report, err := app.workspace.Report()
			if err != nil {
				return err
			}
			fmt.Fprint(app.out, renderReport(app.styles, app.workspace.CurrentProject(), report))
			return nil
		}),
	}
}
