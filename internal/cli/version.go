package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/version"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/chlog"

func newVersionCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for chlog",
		GroupID: GroupInfo,
		Example: `  # Show version info
  chlog version

  # Plain output (for scripts)
  chlog version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if g.plain {
				printPlainVersion(cmd.OutOrStdout())
				return
			}
			printPrettyVersion(cmd.OutOrStdout())
		},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "chlog %s\n", version.Version)
	fmt.Fprintf(w, "commit: %s\n", version.Commit)
	fmt.Fprintf(w, "built: %s\n", version.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(w io.Writer) {
	name := "chlog " + version.Version
	if version.IsDevBuild() {
		name += " (development build)"
	}
	output.PrintSuccess(w, name)
	output.PrintDetail(w, "Commit", version.ShortCommit())
	output.PrintDetail(w, "Built", version.BuildDate)
	output.PrintDetail(w, "Go", runtime.Version())
	output.PrintDetail(w, "Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	output.PrintDetail(w, "Source", SourceURL)
}
