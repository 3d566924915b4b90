package mcpserver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"

	"mcphub/internal/params"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMCPServerHelper serves a small MCP server over stdio when launched by
// the stdio tests below.
func TestMCPServerHelper(t *testing.T) {
	if os.Getenv("GO_WANT_MCP_HELPER") != "1" {
		return
	}

	s := server.NewMCPServer("helper", "1.0.0", server.WithToolCapabilities(false))
	s.AddTool(
		mcp.NewTool("greet",
			mcp.WithDescription("Greets someone"),
			mcp.WithString("name", mcp.Required()),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := request.RequireString("name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			wd, _ := os.Getwd()
			return mcp.NewToolResultText(fmt.Sprintf("hello %s from %s with %s", name, wd, os.Getenv("HELPER_GREETING"))), nil
		},
	)

	if err := server.ServeStdio(s); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

func helperParams(t *testing.T) params.StdioParams {
	t.Helper()
	return params.StdioParams{
		Command: os.Args[0],
		Args:    []string{"-test.run=TestMCPServerHelper"},
		Env: map[string]string{
			"GO_WANT_MCP_HELPER": "1",
			"HELPER_GREETING":    "hi",
		},
		Cwd: t.TempDir(),
	}
}

func TestStdioServer_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping subprocess test in short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("stdio helper is not supported on windows")
	}

	p := helperParams(t)
	srv := NewStdioServer(p, true)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	require.NoError(t, srv.Initialize(ctx))
	defer srv.Close()

	// Second initialize is a no-op
	require.NoError(t, srv.Initialize(ctx))

	tools, err := srv.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "greet", tools[0].Name)

	// Cached listing
	again, err := srv.ListTools(ctx)
	require.NoError(t, err)
	assert.Equal(t, tools, again)

	result, err := srv.CallTool(ctx, "greet", map[string]interface{}{"name": "ada"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, ResultText(result), "hello ada")
	assert.Contains(t, ResultText(result), "with hi")

	assert.Contains(t, ResultText(result), p.Cwd)

	require.NoError(t, srv.Close())
	_, err = srv.ListTools(ctx)
	assert.Error(t, err)
}

func TestStdioServer_NotConnected(t *testing.T) {
	srv := NewStdioServer(params.StdioParams{Command: "unused"}, false)

	_, err := srv.ListTools(context.Background())
	assert.Error(t, err)

	_, err = srv.CallTool(context.Background(), "x", nil)
	assert.Error(t, err)

	_, ok := srv.GetStderr()
	assert.False(t, ok)

	assert.NoError(t, srv.Close())
}

func TestEnvSlice(t *testing.T) {
	assert.Equal(t, []string{"A=1", "B=2"}, envSlice(map[string]string{"B": "2", "A": "1"}))
	assert.Empty(t, envSlice(nil))
}
