package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncforge"
)

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			Writef(app.Stdout, "asyncforge %s\n%s\n", asyncforge.Version(), asyncforge.BuildInfo())
		},
	}
}
