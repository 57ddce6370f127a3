package changelog

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		current string
		rt      ReleaseType
		id      string
		want    string
	}{
		"major":                        {current: "1.2.3", rt: Major, want: "2.0.0"},
		"major from major prerelease":  {current: "2.0.0-beta.1", rt: Major, want: "2.0.0"},
		"major from minor prerelease":  {current: "1.2.0-beta.1", rt: Major, want: "2.0.0"},
		"minor":                        {current: "1.2.3", rt: Minor, want: "1.3.0"},
		"minor from minor prerelease":  {current: "1.3.0-rc.0", rt: Minor, want: "1.3.0"},
		"minor from patch prerelease":  {current: "1.2.3-rc.0", rt: Minor, want: "1.3.0"},
		"patch":                        {current: "1.2.3", rt: Patch, want: "1.2.4"},
		"patch from prerelease":        {current: "1.2.4-beta.0", rt: Patch, want: "1.2.4"},
		"patch drops build metadata":   {current: "1.2.3+build.7", rt: Patch, want: "1.2.4"},
		"premajor":                     {current: "1.2.3", rt: Premajor, want: "2.0.0-0"},
		"premajor with id":             {current: "1.2.3", rt: Premajor, id: "rc", want: "2.0.0-rc.0"},
		"preminor":                     {current: "1.2.3", rt: Preminor, want: "1.3.0-0"},
		"prepatch with id":             {current: "1.2.3", rt: Prepatch, id: "alpha", want: "1.2.4-alpha.0"},
		"prepatch from prerelease":     {current: "1.2.4-beta.3", rt: Prepatch, want: "1.2.5-0"},
		"prerelease from release":      {current: "1.2.3", rt: Prerelease, want: "1.2.4-0"},
		"prerelease numeric":           {current: "1.2.4-0", rt: Prerelease, want: "1.2.4-1"},
		"prerelease named":             {current: "1.2.4-beta.0", rt: Prerelease, want: "1.2.4-beta.1"},
		"prerelease same id":           {current: "1.2.4-beta.0", rt: Prerelease, id: "beta", want: "1.2.4-beta.1"},
		"prerelease new id":            {current: "1.2.4-beta.4", rt: Prerelease, id: "rc", want: "1.2.4-rc.0"},
		"prerelease without a counter": {current: "1.2.4-alpha", rt: Prerelease, want: "1.2.4-alpha.0"},
		"prerelease from release id":   {current: "1.2.3", rt: Prerelease, id: "beta", want: "1.2.4-beta.0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Increment(semver.MustParse(tt.current), tt.rt, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, got.GreaterThan(semver.MustParse(tt.current)), "%s must follow %s", got, tt.current)
		})
	}
}

func TestIncrement_InvalidType(t *testing.T) {
	t.Parallel()

	_, err := Increment(semver.MustParse("1.0.0"), ReleaseType("huge"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid release type")
}

func TestNextVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src  string
		rt   ReleaseType
		want string
	}{
		"first release patch": {src: "## [Unreleased]\n", rt: Patch, want: "0.0.1"},
		"first release minor": {src: "## [Unreleased]\n", rt: Minor, want: "0.1.0"},
		"first release major": {src: "## [Unreleased]\n", rt: Major, want: "1.0.0"},
		"from latest":         {src: multiRelease, rt: Patch, want: "1.1.1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.src)
			rep := NewReport("")
			releases := Preprocess(doc, rep)
			require.NoError(t, rep.Err())

			got, err := NextVersion(releases, tt.rt, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseReleaseType(t *testing.T) {
	t.Parallel()

	for _, rt := range ReleaseTypes() {
		got, err := ParseReleaseType(string(rt))
		require.NoError(t, err)
		assert.Equal(t, rt, got)
	}

	got, err := ParseReleaseType(" MINOR ")
	require.NoError(t, err)
	assert.Equal(t, Minor, got)

	_, err = ParseReleaseType("build")
	assert.Error(t, err)
}
