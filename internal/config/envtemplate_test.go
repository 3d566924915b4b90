package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateVar(t *testing.T) {
	tests := []struct {
		value string
		name  string
		ok    bool
	}{
		{"${API_KEY}", "API_KEY", true},
		{"${A}", "A", true},
		{"plain", "", false},
		{"prefix-${API_KEY}", "", false},
		{"${API_KEY}-suffix", "", false},
		{"${}", "", false},
	}

	for _, tt := range tests {
		name, ok := TemplateVar(tt.value)
		assert.Equal(t, tt.ok, ok, tt.value)
		assert.Equal(t, tt.name, name, tt.value)
	}
}

func TestDetectEnvVars(t *testing.T) {
	entry := ServerEntry{Env: map[string]string{
		"TOKEN":   "${GITHUB_TOKEN}",
		"ALIAS":   "${GITHUB_TOKEN}",
		"URL":     "${BASE_URL}",
		"LITERAL": "value",
	}}

	assert.Equal(t, []string{"BASE_URL", "GITHUB_TOKEN"}, DetectEnvVars(entry))
	assert.Empty(t, DetectEnvVars(ServerEntry{}))
}

func TestProcessEnvVars(t *testing.T) {
	entry := ServerEntry{Env: map[string]string{
		"TOKEN":   "${GITHUB_TOKEN}",
		"URL":     "${BASE_URL}",
		"LITERAL": "value",
	}}

	processed := ProcessEnvVars(entry, map[string]string{"GITHUB_TOKEN": "secret"})

	assert.Equal(t, "secret", processed.Env["TOKEN"])
	assert.Equal(t, "${BASE_URL}", processed.Env["URL"], "unresolved templates are kept verbatim")
	assert.Equal(t, "value", processed.Env["LITERAL"])
	assert.Equal(t, "${GITHUB_TOKEN}", entry.Env["TOKEN"], "input must not be modified")
}

func TestProcessEnvVarsWithoutEnv(t *testing.T) {
	processed := ProcessEnvVars(ServerEntry{PackageName: "p"}, map[string]string{"X": "1"})
	assert.Nil(t, processed.Env)
}

func TestMissingEnvVars(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == "FROM_ENV" {
			return "set", true
		}
		return "", false
	}

	missing := MissingEnvVars(
		[]string{"FROM_ENV", "PROVIDED", "MISSING"},
		map[string]string{"PROVIDED": "x"},
		lookup,
	)
	assert.Equal(t, []string{"MISSING"}, missing)
}
