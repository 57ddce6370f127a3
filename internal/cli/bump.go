package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/markdown"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/spf13/cobra"
)

// nowFunc returns the current time. Tests replace it to pin the default
// release date.
var nowFunc = time.Now

type bumpFlags struct {
	releaseType string
	releaseDate string
	outputFile  string
}

func newBumpCmd(g *globalFlags) *cobra.Command {
	f := &bumpFlags{}

	cmd := &cobra.Command{
		Use:     "bump",
		Short:   "Release the Unreleased section as a new version",
		GroupID: GroupChangelog,
		Long: `Release the Unreleased section as a new version.

The next version is computed from the latest release with the given release
type. The Unreleased heading becomes "## [X.Y.Z] - yyyy-MM-dd" and the link
definitions at the end of the file are regenerated as GitHub tag and compare
URLs. The changelog is validated first and left untouched on any error.`,
		Example: `  # Release a minor version dated today
  chlog bump --release-type minor

  # Release a beta prerelease and keep an empty Unreleased section
  chlog bump -t preminor --prerelease-id beta --keep-unreleased-section

  # Print the bumped changelog instead of writing it
  chlog bump -t patch --github-repo acme/app -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, g, f)
		},
	}

	cmd.Flags().StringP("changelog", "c", config.DefaultChangelogPath, "Path to the changelog")
	cmd.Flags().StringVarP(&f.releaseType, "release-type", "t", "",
		"Version increment: "+strings.Join(releaseTypeNames(), ", "))
	cmd.Flags().StringVar(&f.releaseDate, "release-date", "", "Release date as yyyy-MM-dd (default: today in UTC)")
	cmd.Flags().String("prerelease-id", "", "Prerelease identifier for pre* release types, e.g. beta")
	cmd.Flags().String("tag-prefix", config.DefaultTagPrefix, "Prefix of git tags in release links")
	cmd.Flags().StringVarP(&f.outputFile, "output-file", "o", "", "Write the result here instead of the changelog ('-' for stdout)")
	cmd.Flags().Bool("keep-unreleased-section", false, "Add an empty Unreleased section above the new release")
	cmd.Flags().Bool("fail-on-empty-release-notes", false, "Fail when the Unreleased section has no content")
	cmd.Flags().String("github-repo", "", "GitHub repository for release links as owner/repo (default: from the origin remote)")
	cmd.Flags().String("format", "text", "Result format: text or json")
	_ = cmd.MarkFlagRequired("release-type")

	return cmd
}

func runBump(cmd *cobra.Command, g *globalFlags, f *bumpFlags) error {
	cfg, cliErr := loadConfig(cmd, g)
	if cliErr != nil {
		return fail(cmd, g, cliErr)
	}

	date, cliErr := releaseDate(f.releaseDate)
	if cliErr != nil {
		return fail(cmd, g, cliErr)
	}

	opts := &config.Options{
		ChangelogPath:           cfg.ChangelogPath,
		ReleaseDate:             date,
		ReleaseType:             strings.ToLower(strings.TrimSpace(f.releaseType)),
		TagPrefix:               cfg.TagPrefix,
		PrereleaseID:            cfg.PrereleaseID,
		OutputFile:              f.outputFile,
		KeepUnreleasedSection:   cfg.KeepUnreleasedSection,
		FailOnEmptyReleaseNotes: cfg.FailOnEmptyReleaseNotes,
		GitHubRepo:              resolveGitHubRepo(cfg.GitHubRepo, cfg.ChangelogPath),
		Format:                  cfg.Format,
	}
	if err := opts.Validate(); err != nil {
		return fail(cmd, g, optionsError(err, opts))
	}

	releaseType, err := changelog.ParseReleaseType(opts.ReleaseType)
	if err != nil {
		return fail(cmd, g, clierrors.InvalidReleaseType(opts.ReleaseType))
	}
	links, err := changelog.ParseGitHubRepo(opts.GitHubRepo)
	if err != nil {
		return fail(cmd, g, clierrors.InvalidGitHubRepo(opts.GitHubRepo))
	}

	slog.Debug("bumping changelog",
		slog.String("path", opts.ChangelogPath),
		slog.String("release_type", opts.ReleaseType),
		slog.String("date", date.Format(changelog.DateLayout)),
		slog.String("repo", links.String()))

	doc, cliErr := readChangelog(opts.ChangelogPath)
	if cliErr != nil {
		return fail(cmd, g, cliErr)
	}

	result, err := changelog.Bump(doc, opts.ChangelogPath, changelog.BumpOptions{
		ReleaseType:             releaseType,
		PrereleaseID:            opts.PrereleaseID,
		ReleaseDate:             opts.ReleaseDate,
		TagPrefix:               opts.TagPrefix,
		KeepUnreleasedSection:   opts.KeepUnreleasedSection,
		FailOnEmptyReleaseNotes: opts.FailOnEmptyReleaseNotes,
		Links:                   links,
	})
	if err != nil {
		return fail(cmd, g, classifyError(err, opts.ChangelogPath))
	}

	dest := opts.Destination()
	if cliErr := writeChangelog(cmd.OutOrStdout(), dest, markdown.Serialize(doc)); cliErr != nil {
		return fail(cmd, g, cliErr)
	}

	// Keep stdout clean when it carries the changelog.
	report := cmd.OutOrStdout()
	if dest == stdoutPath {
		report = cmd.ErrOrStderr()
	}
	if err := reportBump(report, opts, dest, result); err != nil {
		return fail(cmd, g, clierrors.Wrap(err, clierrors.Internal))
	}
	return nil
}

// releaseDate parses value as yyyy-MM-dd. An empty value is today in UTC.
func releaseDate(value string) (time.Time, *clierrors.CLIError) {
	if value == "" {
		now := nowFunc().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(changelog.DateLayout, value)
	if err != nil {
		return time.Time{}, clierrors.InvalidReleaseDate(value)
	}
	return date, nil
}

// optionsError turns an options validation failure into the matching CLIError.
func optionsError(err error, opts *config.Options) *clierrors.CLIError {
	var validationErr *config.ValidationError
	if !errors.As(err, &validationErr) {
		return clierrors.NewOptionError(err.Error())
	}
	switch validationErr.Field {
	case "release-type":
		return clierrors.InvalidReleaseType(opts.ReleaseType)
	case "github-repo":
		return clierrors.MissingGitHubRepo()
	default:
		return clierrors.NewOptionError(fmt.Sprintf("--%s %s", validationErr.Field, validationErr.Message))
	}
}

type bumpReport struct {
	Version      string `json:"version"`
	Date         string `json:"date"`
	Output       string `json:"output"`
	ReleaseNotes string `json:"releaseNotes"`
}

func reportBump(w io.Writer, opts *config.Options, dest string, result *changelog.BumpResult) error {
	rep := bumpReport{
		Version:      result.Release.Label(),
		Date:         result.Release.DateString(),
		Output:       dest,
		ReleaseNotes: markdown.Serialize(result.ReleaseNotes),
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	output.PrintSuccess(w, fmt.Sprintf("Released %s (%s)", rep.Version, rep.Date))
	output.PrintDetail(w, "Tag", result.Release.Tag(opts.TagPrefix))
	if dest != stdoutPath {
		output.PrintDetail(w, "Changelog", dest)
	}
	if result.ReleaseNotes.Len() == 0 {
		output.PrintDetail(w, "Notes", "(empty)")
	}
	return nil
}

func releaseTypeNames() []string {
	types := changelog.ReleaseTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
