// Package cli implements the chlog command line: the cobra command tree,
// configuration loading, exit codes and result reporting.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupInfo      = "info"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	plain      bool
}

var rootCmd = NewRootCmd()

// NewRootCmd builds a fresh chlog command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "chlog",
		Short: "Maintain a Keep a Changelog CHANGELOG.md",
		Long: `chlog maintains a CHANGELOG.md written in the Keep a Changelog convention.

It promotes the Unreleased section to a dated release (bump) and extracts
the notes of a release (query). Release headings, their order and the
trailing link definitions are validated before anything is changed.`,
		Example: `  # Release the Unreleased section as the next minor version
  chlog bump --release-type minor

  # Print the notes of the latest release
  chlog query latest`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), g.debug)
			if g.plain {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: .chlog.yml or .chlog.json in the working directory)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&g.plain, "plain", false, "Plain output without colors")

	cmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Other Commands:"},
	)
	cmd.AddCommand(newBumpCmd(g), newQueryCmd(g), newVersionCmd(g))

	return cmd
}

// Execute runs the root command. The returned error carries the exit code;
// every failure has already been reported on stderr.
func Execute() error {
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	// Flag and argument errors from cobra itself.
	cliErr := clierrors.NewOptionErrorWithUsage(err.Error(), cmd.UseLine(),
		"Run 'chlog --help' to see valid commands and flags")
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr, false)
	return NewExitError(ExitInvalidOptions)
}

// setupLogging installs the default slog logger on w. Debug enables
// debug-level records and git debug output.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))

	if debug {
		git.SetDebugLogger(func(format string, args ...any) {
			slog.Debug(fmt.Sprintf(format, args...))
		})
	} else {
		git.SetDebugLogger(nil)
	}
}

// fail reports cliErr on the command's stderr and returns the matching exit error.
func fail(cmd *cobra.Command, g *globalFlags, cliErr *clierrors.CLIError) error {
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr, g.plain)
	return NewExitError(exitCodeFor(cliErr.Category))
}
