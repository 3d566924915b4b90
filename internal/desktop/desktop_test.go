package desktop

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mcphub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		home    string
		appData string
		want    string
		wantErr bool
	}{
		{
			name: "darwin",
			goos: "darwin",
			home: "/Users/ada",
			want: "/Users/ada/Library/Application Support/Claude/claude_desktop_config.json",
		},
		{
			name:    "windows",
			goos:    "windows",
			appData: "/appdata",
			want:    filepath.Join("/appdata", "Claude", "claude_desktop_config.json"),
		},
		{
			name:    "windows without AppData",
			goos:    "windows",
			wantErr: true,
		},
		{
			name:    "linux unsupported",
			goos:    "linux",
			home:    "/home/ada",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfigPath(tt.goos, tt.home, tt.appData)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPath_UnsupportedIsSentinel(t *testing.T) {
	_, err := ConfigPath("plan9", "/", "")
	assert.True(t, errors.Is(err, ErrUnsupportedOS))
}

func readDoc(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestApply_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Claude", ConfigFileName)

	err := Apply(path, "fetch", config.ServerEntry{
		PackageName: "fetch-mcp",
		Command:     config.StringPtr("uvx"),
		Args:        []string{"mcp-server-fetch"},
	})
	require.NoError(t, err)

	doc := readDoc(t, path)
	servers := doc["mcpServers"].(map[string]interface{})
	fetch := servers["fetch"].(map[string]interface{})
	assert.Equal(t, "uvx", fetch["command"])
	assert.Equal(t, "fetch-mcp", fetch["package_name"])
	assert.NotContains(t, fetch, "env")
}

func TestApply_PreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{
  "theme": "dark",
  "mcpServers": {"existing": {"command": "node"}}
}`), 0644))

	require.NoError(t, Apply(path, "new", config.ServerEntry{Command: config.StringPtr("python")}))

	doc := readDoc(t, path)
	assert.Equal(t, "dark", doc["theme"])
	servers := doc["mcpServers"].(map[string]interface{})
	assert.Contains(t, servers, "existing")
	assert.Contains(t, servers, "new")
}

func TestApply_UnparseableStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	require.NoError(t, Apply(path, "fetch", config.ServerEntry{Command: config.StringPtr("uvx")}))

	doc := readDoc(t, path)
	servers := doc["mcpServers"].(map[string]interface{})
	assert.Len(t, servers, 1)
}

func TestApply_IndentsTwoSpaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, Apply(path, "x", config.ServerEntry{Command: config.StringPtr("x")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"mcpServers\": {\n    \"x\": {")
}
