package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("json with defaults applied", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "search.json", `{
			"site_root": "public",
			"exclude_paths": ["404.html"],
			"key_tags": [{"titles": ["title"]}, {"headings": ["h1", "h2"]}],
			"path_boosts": [{"9": ["b.html"]}],
			"char_boosts": [{"time": ["blog/**/*.html"]}],
			"file_terms": {"/api/": "reference"},
			"ref": "url",
			"fields": [{"id": "titles", "boost": 10}]
		}`)

		cfg, err := fs.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "public", cfg.SiteRoot)
		assert.Equal(t, []string{"404.html"}, cfg.ExcludePaths)
		assert.Equal(t, []string{"**/*.html"}, cfg.IncludePaths)
		assert.Equal(t, "./documents.json", cfg.Output)
		assert.Equal(t, []sitesearch.ExtractRule{
			{Category: "titles", Tags: []string{"title"}},
			{Category: "headings", Tags: []string{"h1", "h2"}},
		}, cfg.ExtractRules())
		assert.Equal(t, sitesearch.Groups{{Name: "9", Values: []string{"b.html"}}}, cfg.PathBoosts)
		assert.Equal(t, sitesearch.FileTermRules{{Pattern: "/api/", Terms: "reference"}}, cfg.FileTerms)
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "search.toml", `
site_root = "public"
exclude_paths = ["drafts/**"]
key_tags = [
  { titles = ["title"] },
  { headings = ["h1", "h2"] },
]
path_boosts = [{ "9" = ["b.html"] }, { "2" = ["old/**"] }]
char_boosts = [{ time = ["blog/**/*.html"] }]
output = "out/documents.json"
meta_data_output = "out/metadata.json"

[file_terms]
"/api/" = "reference"
`)

		cfg, err := fs.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "public", cfg.SiteRoot)
		assert.Equal(t, []string{"drafts/**"}, cfg.ExcludePaths)
		assert.Equal(t, sitesearch.Groups{
			{Name: "titles", Values: []string{"title"}},
			{Name: "headings", Values: []string{"h1", "h2"}},
		}, cfg.KeyTags)
		assert.Equal(t, sitesearch.Groups{
			{Name: "9", Values: []string{"b.html"}},
			{Name: "2", Values: []string{"old/**"}},
		}, cfg.PathBoosts)
		assert.Equal(t, sitesearch.Groups{{Name: "time", Values: []string{"blog/**/*.html"}}}, cfg.CharBoosts)
		assert.Equal(t, sitesearch.FileTermRules{{Pattern: "/api/", Terms: "reference"}}, cfg.FileTerms)
		assert.Equal(t, "out/documents.json", cfg.Output)
		assert.Equal(t, "out/metadata.json", cfg.MetadataOutput)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadConfig(filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
		assert.Equal(t, sitesearch.ENOTFOUND, sitesearch.ErrorCode(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "search.json", `{"site_root": `)

		_, err := fs.LoadConfig(path)

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("malformed toml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "search.toml", `site_root = `)

		_, err := fs.LoadConfig(path)

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("missing required fields", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "search.json", `{"exclude_paths": []}`)

		_, err := fs.LoadConfig(path)

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
		assert.Contains(t, err.Error(), "site_root required")
		assert.Contains(t, err.Error(), "key_tags required")
	})
}
