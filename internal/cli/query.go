package cli

import (
	"encoding/json"
	"io"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/markdown"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/spf13/cobra"
)

func newQueryCmd(g *globalFlags) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:     "query [unreleased|latest|latest-or-unreleased|<version>]",
		Aliases: []string{"q"},
		Short:   "Print the release notes of one release (q)",
		GroupID: GroupChangelog,
		Long: `Print the release notes of one release.

The notes are the content between the release heading and the next section,
written as Markdown. Piped output is the raw Markdown, suitable for GitHub
release bodies; on a terminal the categories are colored. The changelog is
never modified.`,
		Example: `  # Notes of the latest release
  chlog query latest

  # Notes of a specific version (v prefix optional)
  chlog query v1.2.0

  # Release metadata and notes as JSON
  chlog query unreleased --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				selector = args[0]
			}
			return runQuery(cmd, g, selector)
		},
	}

	cmd.Flags().StringP("changelog", "c", config.DefaultChangelogPath, "Path to the changelog")
	cmd.Flags().StringVar(&selector, "version", "latest", "Release to print: unreleased, latest, latest-or-unreleased or a version")
	cmd.Flags().String("tag-prefix", config.DefaultTagPrefix, "Prefix of the release tag shown in the header")
	cmd.Flags().String("format", "text", "Output format: text or json")

	return cmd
}

func runQuery(cmd *cobra.Command, g *globalFlags, selector string) error {
	cfg, cliErr := loadConfig(cmd, g)
	if cliErr != nil {
		return fail(cmd, g, cliErr)
	}

	sel, err := changelog.ParseSelector(selector)
	if err != nil {
		return fail(cmd, g, clierrors.InvalidSelector(selector))
	}

	doc, cliErr := readChangelog(cfg.ChangelogPath)
	if cliErr != nil {
		return fail(cmd, g, cliErr)
	}

	ext, err := changelog.Query(doc, cfg.ChangelogPath, sel)
	if err != nil {
		return fail(cmd, g, classifyError(err, cfg.ChangelogPath))
	}

	out := cmd.OutOrStdout()
	if cfg.Format == "json" {
		err = writeQueryJSON(out, ext)
	} else {
		plain := g.plain || !output.IsTerminal(out)
		err = changelog.FormatRelease(ext, out, changelog.FormatOptions{Plain: plain, TagPrefix: cfg.TagPrefix})
	}
	if err != nil {
		return fail(cmd, g, clierrors.Wrap(err, clierrors.Internal))
	}
	return nil
}

type queryReport struct {
	Version      string `json:"version"`
	Date         string `json:"date,omitempty"`
	Suffix       string `json:"suffix,omitempty"`
	ReleaseNotes string `json:"releaseNotes"`
}

func writeQueryJSON(w io.Writer, ext *changelog.Extraction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(queryReport{
		Version:      ext.Release.Label(),
		Date:         ext.Release.DateString(),
		Suffix:       ext.Release.Suffix,
		ReleaseNotes: markdown.Serialize(ext.Notes),
	})
}
