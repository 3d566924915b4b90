package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerEntry_Override(t *testing.T) {
	base := ServerEntry{
		PackageName: "predefined-server",
		Command:     StringPtr("python"),
		Args:        []string{"-m", "predefined_server"},
		Env:         map[string]string{"A": "1"},
		Description: StringPtr("Predefined MCP Server"),
		Tags:        []string{"predefined", "demo"},
	}

	tests := []struct {
		name     string
		over     ServerEntry
		expected ServerConfig
	}{
		{
			name: "package name only inherits everything",
			over: ServerEntry{PackageName: "predefined-server"},
			expected: ServerConfig{
				PackageName: "predefined-server",
				Command:     "python",
				Args:        []string{"-m", "predefined_server"},
				Env:         map[string]string{"A": "1"},
				Description: "Predefined MCP Server",
				Tags:        []string{"predefined", "demo"},
			},
		},
		{
			name: "explicit fields replace catalog values",
			over: ServerEntry{
				PackageName: "predefined-server",
				Args:        []string{"--debug"},
				Env:         map[string]string{"B": "2"},
			},
			expected: ServerConfig{
				PackageName: "predefined-server",
				Command:     "python",
				Args:        []string{"--debug"},
				Env:         map[string]string{"B": "2"},
				Description: "Predefined MCP Server",
				Tags:        []string{"predefined", "demo"},
			},
		},
		{
			name: "explicit empty args clear the catalog args",
			over: ServerEntry{Args: []string{}},
			expected: ServerConfig{
				PackageName: "predefined-server",
				Command:     "python",
				Args:        []string{},
				Env:         map[string]string{"A": "1"},
				Description: "Predefined MCP Server",
				Tags:        []string{"predefined", "demo"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Override(tt.over).Resolve("fallback")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestServerEntry_OverrideDoesNotAlias(t *testing.T) {
	base := ServerEntry{Command: StringPtr("python"), Args: []string{"a"}}
	merged := base.Override(ServerEntry{})
	merged.Args[0] = "changed"
	*merged.Command = "node"

	assert.Equal(t, "a", base.Args[0])
	assert.Equal(t, "python", *base.Command)
}

func TestServerEntry_ResolveDefaults(t *testing.T) {
	cfg := ServerEntry{Command: StringPtr("node")}.Resolve("my-server")

	assert.Equal(t, "my-server", cfg.PackageName)
	assert.Equal(t, "node", cfg.Command)
	assert.NotNil(t, cfg.Args)
	assert.NotNil(t, cfg.Env)
	assert.Empty(t, cfg.Cwd)
	assert.False(t, cfg.NeedsSetup())
}

func TestServerEntry_JSONPresence(t *testing.T) {
	var entry ServerEntry
	require.NoError(t, json.Unmarshal([]byte(`{"package_name":"p","args":[]}`), &entry))

	assert.Equal(t, "p", entry.PackageName)
	assert.Nil(t, entry.Command)
	assert.NotNil(t, entry.Args)
	assert.Nil(t, entry.Env)
	assert.False(t, entry.IsSelfContained())
}

func TestServerConfig_Clone(t *testing.T) {
	cfg := ServerConfig{Args: []string{"x"}, Env: map[string]string{"K": "V"}}
	clone := cfg.Clone()
	clone.Args[0] = "y"
	clone.Env["K"] = "W"

	assert.Equal(t, "x", cfg.Args[0])
	assert.Equal(t, "V", cfg.Env["K"])
}

func TestServerEntry_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "absent collections stay absent",
			in:   `{"command":"node"}`,
			want: `{"command":"node"}`,
		},
		{
			name: "empty collections are kept",
			in:   `{"package_name":"p","args":[],"env":{},"tags":[]}`,
			want: `{"package_name":"p","args":[],"env":{},"tags":[]}`,
		},
		{
			name: "unknown keys follow known fields",
			in:   `{"zeta":1,"command":"node","alpha":"x"}`,
			want: `{"command":"node","alpha":"x","zeta":1}`,
		},
		{
			name: "only unknown keys",
			in:   `{"disabled":false}`,
			want: `{"disabled":false}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ServerEntry
			require.NoError(t, json.Unmarshal([]byte(tt.in), &e))
			out, err := json.Marshal(e)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestServerEntry_CloneCopiesExtra(t *testing.T) {
	var e ServerEntry
	require.NoError(t, json.Unmarshal([]byte(`{"command":"node","disabled":true}`), &e))

	c := e.clone()
	c.Extra["disabled"] = json.RawMessage("false")
	assert.Equal(t, json.RawMessage("true"), e.Extra["disabled"])
}
