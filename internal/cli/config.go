package cli

import (
	"errors"

	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/spf13/cobra"
)

// configFlags maps flag names to the config keys they override.
var configFlags = map[string]string{
	"changelog":                   "changelog_path",
	"tag-prefix":                  "tag_prefix",
	"github-repo":                 "github_repo",
	"prerelease-id":               "prerelease_id",
	"keep-unreleased-section":     "keep_unreleased_section",
	"fail-on-empty-release-notes": "fail_on_empty_release_notes",
	"format":                      "format",
}

// loadConfig loads the layered configuration with the explicitly set flags
// of cmd as the highest priority layer.
func loadConfig(cmd *cobra.Command, g *globalFlags) (*config.Configuration, *clierrors.CLIError) {
	overrides := make(map[string]any)
	for name, key := range configFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if f.Value.Type() == "bool" {
			v, _ := cmd.Flags().GetBool(name)
			overrides[key] = v
			continue
		}
		overrides[key] = f.Value.String()
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: g.configPath,
		Overrides:  overrides,
	})
	if err != nil {
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			return nil, clierrors.InvalidConfig(err)
		}
		path := g.configPath
		if path == "" {
			path = config.FindProjectConfig("")
		}
		return nil, clierrors.ConfigParseError(path, err)
	}
	return cfg, nil
}
