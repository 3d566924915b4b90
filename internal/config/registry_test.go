package config

import (
	"errors"
	"path/filepath"
	"testing"

	"mcphub/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	values map[string]string
	err    error
	asked  []string
}

func (f *fakePrompter) PromptEnvVars(vars []string) (map[string]string, error) {
	f.asked = vars
	return f.values, f.err
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	catalog := Catalog{
		"github-mcp": {
			PackageName: "github-mcp",
			Command:     StringPtr("npx"),
			Env: map[string]string{
				"GITHUB_PERSONAL_ACCESS_TOKEN": "${GITHUB_PERSONAL_ACCESS_TOKEN}",
				"GITHUB_HOST":                  "${GITHUB_HOST}",
			},
		},
		"fetch-mcp": {PackageName: "fetch-mcp", Command: StringPtr("uvx")},
	}
	r := NewRegistry(NewStore(filepath.Join(t.TempDir(), ".mcphub.json")), catalog)
	r.lookupEnv = func(string) (string, bool) { return "", false }
	return r
}

func TestRegistry_AddFromCatalogInteractive(t *testing.T) {
	r := newTestRegistry(t)
	prompter := &fakePrompter{values: map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_x", "GITHUB_HOST": ""}}

	result, err := r.AddFromCatalog("github-mcp", AddOptions{Interactive: true, SaveToConfig: true, Prompter: prompter})
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.Equal(t, []string{"GITHUB_HOST", "GITHUB_PERSONAL_ACCESS_TOKEN"}, prompter.asked)
	assert.Equal(t, []string{"GITHUB_HOST"}, result.MissingEnvVars)

	servers, err := r.ListConfigured()
	require.NoError(t, err)
	saved := servers["github-mcp"]
	assert.Equal(t, "ghp_x", saved.Env["GITHUB_PERSONAL_ACCESS_TOKEN"])
	assert.Equal(t, "${GITHUB_HOST}", saved.Env["GITHUB_HOST"])
}

func TestRegistry_AddFromCatalogNonInteractive(t *testing.T) {
	r := newTestRegistry(t)

	result, err := r.AddFromCatalog("github-mcp", AddOptions{SaveToConfig: false})
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Len(t, result.MissingEnvVars, 2)
	assert.False(t, r.Store().Exists())
}

func TestRegistry_AddFromCatalogUnknown(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.AddFromCatalog("nope", AddOptions{SaveToConfig: true})
	assert.True(t, api.IsServerConfigNotFound(err))
}

func TestRegistry_AddFromCatalogPrompterError(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.AddFromCatalog("github-mcp", AddOptions{Interactive: true, Prompter: &fakePrompter{err: errors.New("eof")}})
	assert.Error(t, err)

	_, err = r.AddFromCatalog("github-mcp", AddOptions{Interactive: true})
	assert.Error(t, err, "interactive add without prompter")
}

func TestRegistry_Remove(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.AddFromCatalog("fetch-mcp", AddOptions{SaveToConfig: true})
	require.NoError(t, err)

	removed, err := r.Remove("fetch-mcp")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Remove("fetch-mcp")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, []string{"fetch-mcp", "github-mcp"}, r.ListAvailable().Names())
}

func TestRegistry_MissingEnvVarsConsultsEnvironment(t *testing.T) {
	r := newTestRegistry(t)
	r.lookupEnv = func(name string) (string, bool) {
		if name == "GITHUB_HOST" {
			return "github.example.com", true
		}
		return "", false
	}

	result, err := r.AddFromCatalog("github-mcp", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"GITHUB_PERSONAL_ACCESS_TOKEN"}, result.MissingEnvVars)
}
