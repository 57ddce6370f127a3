package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, DefaultChangelogPath, cfg.ChangelogPath)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.GitHubRepo)
	assert.False(t, cfg.KeepUnreleasedSection)
	assert.False(t, cfg.FailOnEmptyReleaseNotes)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {
			name: ".chlog.yml",
			content: `changelog_path: docs/CHANGES.md
tag_prefix: release-
github_repo: acme/app
prerelease_id: rc
keep_unreleased_section: true
fail_on_empty_release_notes: true
format: json
`,
		},
		"yaml long extension": {
			name: ".chlog.yaml",
			content: `changelog_path: docs/CHANGES.md
tag_prefix: release-
github_repo: acme/app
prerelease_id: rc
keep_unreleased_section: true
fail_on_empty_release_notes: true
format: JSON
`,
		},
		"json": {
			name: ".chlog.json",
			content: `{
  "changelog_path": "docs/CHANGES.md",
  "tag_prefix": "release-",
  "github_repo": "acme/app",
  "prerelease_id": "rc",
  "keep_unreleased_section": true,
  "fail_on_empty_release_notes": true,
  "format": "json"
}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, dir, tt.name, tt.content)

			cfg, err := Load(LoadOptions{Dir: dir})
			require.NoError(t, err)

			assert.Equal(t, &Configuration{
				ChangelogPath:           "docs/CHANGES.md",
				TagPrefix:               "release-",
				GitHubRepo:              "acme/app",
				PrereleaseID:            "rc",
				KeepUnreleasedSection:   true,
				FailOnEmptyReleaseNotes: true,
				Format:                  "json",
			}, cfg)
		})
	}
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".chlog.yml", "tag_prefix: project-\n")
	explicit := writeFile(t, t.TempDir(), "custom.yml", "tag_prefix: custom-\n")

	cfg, err := Load(LoadOptions{Dir: dir, ConfigPath: explicit})
	require.NoError(t, err)
	assert.Equal(t, "custom-", cfg.TagPrefix)

	_, err = Load(LoadOptions{ConfigPath: filepath.Join(dir, "missing.yml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".chlog.yml", "tag_prefix: project-\nformat: json\n")

	cfg, err := Load(LoadOptions{
		Dir:       dir,
		Overrides: map[string]any{"tag_prefix": "flag-"},
	})
	require.NoError(t, err)
	assert.Equal(t, "flag-", cfg.TagPrefix)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".chlog.yml", "tag_prefix: project-\ngithub_repo: acme/app\n")

	t.Setenv("CHLOG_TAG_PREFIX", "env-")
	t.Setenv("CHLOG_KEEP_UNRELEASED_SECTION", "true")

	cfg, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "env-", cfg.TagPrefix)
	assert.True(t, cfg.KeepUnreleasedSection)
	assert.Equal(t, "acme/app", cfg.GitHubRepo)

	cfg, err = Load(LoadOptions{Dir: dir, Overrides: map[string]any{"tag_prefix": "flag-"}})
	require.NoError(t, err)
	assert.Equal(t, "flag-", cfg.TagPrefix)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name        string
		content     string
		errContains string
	}{
		"yaml syntax": {
			name:        ".chlog.yml",
			content:     "tag_prefix: v\nformat: [json\n",
			errContains: "validating YAML syntax",
		},
		"json syntax": {
			name:        ".chlog.json",
			content:     `{"tag_prefix": `,
			errContains: "failed to load project config",
		},
		"unknown format": {
			name:        ".chlog.yml",
			content:     "format: xml\n",
			errContains: "field 'format': must be one of: text, json",
		},
		"empty changelog path": {
			name:        ".chlog.yml",
			content:     "changelog_path: \"\"\n",
			errContains: "field 'changelog_path': is required",
		},
		"bad prerelease id": {
			name:        ".chlog.yml",
			content:     "prerelease_id: \"rc 1\"\n",
			errContains: "field 'prerelease_id'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, dir, tt.name, tt.content)

			_, err := Load(LoadOptions{Dir: dir})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(dir, "missing.yml")))
	assert.NoError(t, ValidateYAMLSyntax(writeFile(t, dir, "empty.yml", "  \n")))
	assert.NoError(t, ValidateYAMLSyntax(writeFile(t, dir, "ok.yml", "tag_prefix: v\n")))

	err := ValidateYAMLSyntax(writeFile(t, dir, "bad.yml", "a: b\n  c: d\n"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Positive(t, validationErr.Line)
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, FindProjectConfig(dir))

	jsonPath := writeFile(t, dir, ".chlog.json", "{}")
	assert.Equal(t, jsonPath, FindProjectConfig(dir))

	ymlPath := writeFile(t, dir, ".chlog.yml", "")
	assert.Equal(t, ymlPath, FindProjectConfig(dir), "yml takes precedence over json")
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Options {
		return Options{
			ChangelogPath: "CHANGELOG.md",
			ReleaseDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			ReleaseType:   "minor",
			TagPrefix:     "v",
			GitHubRepo:    "acme/app",
			Format:        "text",
		}
	}

	tests := map[string]struct {
		mutate      func(o *Options)
		errContains string
	}{
		"valid": {
			mutate: func(o *Options) {},
		},
		"valid prerelease id": {
			mutate: func(o *Options) {
				o.ReleaseType = "prerelease"
				o.PrereleaseID = "beta.1"
			},
		},
		"missing release type": {
			mutate:      func(o *Options) { o.ReleaseType = "" },
			errContains: "field 'release-type': is required",
		},
		"unknown release type": {
			mutate:      func(o *Options) { o.ReleaseType = "huge" },
			errContains: "field 'release-type': must be one of",
		},
		"missing repo": {
			mutate:      func(o *Options) { o.GitHubRepo = "" },
			errContains: "field 'github-repo': is required",
		},
		"bad prerelease id": {
			mutate:      func(o *Options) { o.PrereleaseID = "beta_1" },
			errContains: "field 'prerelease-id'",
		},
		"bad format": {
			mutate:      func(o *Options) { o.Format = "yaml" },
			errContains: "field 'format'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			o := valid()
			tt.mutate(&o)
			err := o.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOptions_Destination(t *testing.T) {
	t.Parallel()

	o := Options{ChangelogPath: "CHANGELOG.md"}
	assert.Equal(t, "CHANGELOG.md", o.Destination())

	o.OutputFile = "-"
	assert.Equal(t, "-", o.Destination())
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "changelog_path", toSnakeCase("ChangelogPath"))
	assert.Equal(t, "format", toSnakeCase("format"))
}
