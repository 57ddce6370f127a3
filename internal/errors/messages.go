package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the chlog CLI.

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string) *CLIError {
	return NewOptionError(
		fmt.Sprintf("changelog not found: %s", path),
		"Check the path passed with --changelog",
		"Or set changelog_path in .chlog.yml",
	)
}

// ChangelogReadError creates an error when the changelog cannot be read.
func ChangelogReadError(path string, err error) *CLIError {
	return WrapWithMessage(err, Internal,
		fmt.Sprintf("failed to read changelog %s", path),
		"Check file permissions: ls -la "+path,
	)
}

// ChangelogWriteError creates an error when the result cannot be written.
func ChangelogWriteError(path string, err error) *CLIError {
	return WrapWithMessage(err, Internal,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// InvalidChangelog creates an error for a changelog that is not valid Markdown text.
func InvalidChangelog(path string, err error) *CLIError {
	return WrapWithMessage(err, Pipeline,
		fmt.Sprintf("failed to parse changelog %s", path),
		"Make sure the file is UTF-8 encoded",
	)
}

// StructuralFailure creates an error for a changelog whose release sections are malformed.
// err carries one line per problem.
func StructuralFailure(err error) *CLIError {
	return &CLIError{
		Category: Pipeline,
		Message:  "invalid changelog structure:\n" + err.Error(),
		Remediation: []string{
			"Release headings look like: ## [1.2.0] - 2024-01-31",
			"Keep ## [Unreleased] first and releases in descending version order",
			"Keep link definitions at the end of the file",
		},
		Err: err,
	}
}

// NoUnreleasedSection creates an error when bump finds nothing to release.
func NoUnreleasedSection(path string) *CLIError {
	return NewPipelineError(
		fmt.Sprintf("%s has no Unreleased section to release", path),
		"Add a '## [Unreleased]' heading above the latest release",
		"Or bump with --keep-unreleased-section to always keep one",
	)
}

// EmptyReleaseNotes creates an error when the released section has no content.
func EmptyReleaseNotes(path string) *CLIError {
	return NewPipelineError(
		fmt.Sprintf("the Unreleased section of %s is empty", path),
		"Add entries under '## [Unreleased]' before releasing",
		"Or drop --fail-on-empty-release-notes",
	)
}

// ReleaseNotFound creates an error when a query matches no release.
func ReleaseNotFound(selector string, available []string) *CLIError {
	remediation := []string{"Query one of: unreleased, latest, latest-or-unreleased or a listed version"}
	if len(available) > 0 {
		remediation = append(remediation, "Available releases: "+strings.Join(available, ", "))
	}
	return NewPipelineError(fmt.Sprintf("release %q not found", selector), remediation...)
}

// InvalidReleaseType creates an error for an unknown --release-type.
func InvalidReleaseType(value string) *CLIError {
	return NewOptionErrorWithUsage(
		fmt.Sprintf("invalid release type: %q", value),
		"chlog bump --release-type <major|premajor|minor|preminor|patch|prepatch|prerelease>",
		"Pick one of the listed release types",
		"Example: chlog bump --release-type minor",
	)
}

// InvalidReleaseDate creates an error for a malformed --release-date.
func InvalidReleaseDate(value string) *CLIError {
	return NewOptionErrorWithUsage(
		fmt.Sprintf("invalid release date: %q", value),
		"chlog bump --release-date yyyy-MM-dd",
		"Use a calendar date such as 2024-01-31",
	)
}

// InvalidSelector creates an error for an unparsable query selector.
func InvalidSelector(value string) *CLIError {
	return NewOptionErrorWithUsage(
		fmt.Sprintf("invalid release selector: %q", value),
		"chlog query [unreleased|latest|latest-or-unreleased|<version>]",
		"Versions may carry a v prefix (v1.2.0 and 1.2.0 are the same)",
	)
}

// MissingGitHubRepo creates an error when no repository is known for link generation.
func MissingGitHubRepo() *CLIError {
	return NewOptionError(
		"cannot determine the GitHub repository for release links",
		"Pass --github-repo owner/repo",
		"Or set github_repo in .chlog.yml or CHLOG_GITHUB_REPO",
		"Or run inside a clone whose origin remote points at github.com",
	)
}

// InvalidGitHubRepo creates an error for a malformed repository reference.
func InvalidGitHubRepo(value string) *CLIError {
	return NewOptionErrorWithUsage(
		fmt.Sprintf("invalid GitHub repository: %q", value),
		"chlog bump --github-repo owner/repo",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Option,
		fmt.Sprintf("failed to load config %s", path),
		"Check the file for YAML or JSON syntax errors",
		"Config keys use snake_case, for example tag_prefix: v",
	)
}

// InvalidConfig creates an error for configuration values that fail validation.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Option,
		"invalid configuration",
		"Run 'chlog <command> --help' to see valid options",
	)
}
