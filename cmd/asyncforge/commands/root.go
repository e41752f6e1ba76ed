package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncforge"
	"github.com/erraggy/asyncforge/logging"
)

// App holds state shared by every command.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	configFile string
	logger     logging.Logger
}

// NewApp returns an App wired to the process's standard streams.
func NewApp() *App {
	return &App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// NewRootCommand builds the asyncforge command tree.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asyncforge",
		Short: "Compile service descriptions into AsyncAPI 3.0.0 documents",
		Long: headingColor.Sprintf("Usage: asyncforge [global options] <subcommand> [args]\n") + "\n" +
			"asyncforge compiles annotated service descriptions (YAML descriptions or\n" +
			"Go packages with //asyncapi: directives) into AsyncAPI 3.0.0 documents,\n" +
			"attaching protocol bindings and validating the result.\n",
		Version:       asyncforge.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = cmd.Help()
			}
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVar(&app.configFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().String("log-format", "text", "Log format. One of: (text | json)")
	cmd.PersistentFlags().String("log-level", "warn", "Log level. One of: (debug | info | warn | error)")

	cmd.SetIn(app.Stdin)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)
	setUsageTemplate(cmd)
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newCompileCommand(app),
		newValidateCommand(app),
		newBindingsCommand(app),
		newMCPCommand(app),
		newVersionCommand(app),
	)
	return cmd
}

func setUsageTemplate(cmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleHeading", headingColor.SprintFunc())
	usageTemplate := strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Examples:`, `{{StyleHeading "Examples:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Additional Commands:`, `{{StyleHeading "Additional Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(cmd.UsageTemplate())
	cmd.SetUsageTemplate(usageTemplate)
}

// Execute runs the command line args and returns the process exit code.
func Execute(ctx context.Context, app *App, args []string) int {
	// Disable color output if NO_COLOR is set in the environment
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		color.NoColor = true
	}

	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			Writef(app.Stderr, "%s %v\n", errorColor.Sprint("Error:"), err)
		}
	}
	return exitCode(err)
}
