package formatting

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleServers() []ServerRow {
	return []ServerRow{
		{Name: "fetch", PackageName: "fetch-mcp", Command: "uvx", Args: []string{"mcp-server-fetch"}, Description: "Fetch web pages", Configured: true},
		{Name: "github", PackageName: "github-mcp", Command: "npx", Tags: []string{"git", "vcs"}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &TableFormatter{}, NewFormatter(Options{}))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(Options{Format: FormatJSON}))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(Options{Format: FormatYAML}))
}

func TestJSONFormatter_Servers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{Out: &buf}).FormatServers(sampleServers()))

	var rows []ServerRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, sampleServers(), rows)
}

func TestJSONFormatter_EmptyServers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{Out: &buf}).FormatServers(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Tools(t *testing.T) {
	var buf bytes.Buffer
	tools := []mcp.Tool{mcp.NewTool("fetch", mcp.WithDescription("Fetch a URL"))}
	require.NoError(t, NewYAMLFormatter(Options{Out: &buf}).FormatTools("fetch", tools))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "fetch", doc["server"])
	assert.Equal(t, 1, doc["count"])
}

func TestTableFormatter_Servers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{Out: &buf}).FormatServers(sampleServers()))

	out := buf.String()
	assert.Contains(t, out, "fetch-mcp")
	assert.Contains(t, out, "uvx mcp-server-fetch")
	assert.Contains(t, out, "git, vcs")
	assert.Contains(t, out, "Total:")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(Options{Out: &buf})

	require.NoError(t, f.FormatServers(nil))
	require.NoError(t, f.FormatTools("x", nil))
	require.NoError(t, f.FormatSetupResults(nil))

	assert.Contains(t, buf.String(), "No servers found")
	assert.Contains(t, buf.String(), "No tools found for x")
	assert.Contains(t, buf.String(), "No servers need setup")
}

func TestTableFormatter_SetupResults(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableFormatter(Options{Out: &buf}).FormatSetupResults([]SetupRow{
		{Name: "ok", State: "ready", Path: "/cache/ok"},
		{Name: "bad", State: "failed", Error: "failed to clone repository x"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/cache/ok")
	assert.Contains(t, buf.String(), "failed to clone repository x")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"name\": \"test\"\n}", PrettyJSON(map[string]string{"name": "test"}))
	assert.Equal(t, "null", PrettyJSON(nil))
}
