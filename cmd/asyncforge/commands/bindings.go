package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erraggy/asyncforge/bindings"
)

// BindingsFlags contains flags for the bindings command.
type BindingsFlags struct {
	Format string
	Level  string
}

func newBindingsCommand(app *App) *cobra.Command {
	flags := &BindingsFlags{}
	cmd := &cobra.Command{
		Use:   "bindings [flags]",
		Short: "List the supported protocol and cloud bindings",
		Example: "  asyncforge bindings\n" +
			"  asyncforge bindings --level message\n" +
			"  asyncforge bindings --format json | jq '.[].type'",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runBindings(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.Format, "format", FormatText, "Output format: text, json, or yaml")
	cmd.Flags().StringVar(&flags.Level, "level", "", "Only list bindings attaching at this level: channel, operation, message, server")
	return cmd
}

func (a *App) runBindings(cmd *cobra.Command, flags *BindingsFlags) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if _, err := a.loadConfig(cmd, nil); err != nil {
		return err
	}

	caps := bindings.DefaultRegistry().Capabilities()
	if flags.Level != "" {
		level := bindings.Level(strings.ToLower(flags.Level))
		switch level {
		case bindings.LevelChannel, bindings.LevelOperation, bindings.LevelMessage, bindings.LevelServer:
		default:
			return fmt.Errorf("invalid level '%s'. Valid levels: channel, operation, message, server", flags.Level)
		}
		filtered := caps[:0]
		for _, c := range caps {
			if c.Supports(level) {
				filtered = append(filtered, c)
			}
		}
		caps = filtered
	}

	if flags.Format != FormatText {
		return OutputStructured(a.Stdout, caps, flags.Format)
	}

	tw := tabwriter.NewWriter(a.Stdout, 0, 0, 2, ' ', 0)
	Writef(tw, "TYPE\tVERSION\tPROVIDER\tLEVELS\tFEATURES\n")
	for _, c := range caps {
		levels := make([]string, 0, len(c.Levels))
		for _, l := range c.Levels {
			levels = append(levels, string(l))
		}
		provider := c.Provider
		if provider == "" {
			provider = "-"
		}
		Writef(tw, "%s\t%s\t%s\t%s\t%s\n", c.Type, c.BindingVersion, provider,
			strings.Join(levels, ","), strings.Join(c.Features, ","))
	}
	return tw.Flush()
}
