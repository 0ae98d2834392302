package cli

import (
	"fmt"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFacultyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "faculty",
		Short: "List faculty members with their record totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, err := app.Datasets.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFacultyList(analytics.TotalsByFaculty(ds)))
			return nil
		},
	}
}
