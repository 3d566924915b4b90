package mcpserver

import (
	"context"

	"mcphub/internal/params"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolServer is a handle on a running tool server process. StdioServer is the
// production implementation; tests substitute fakes through Options.NewToolServer.
type ToolServer interface {
	// Initialize starts the process and performs the protocol handshake
	Initialize(ctx context.Context) error
	// Close terminates the process
	Close() error
	// ListTools returns the tools the server advertises
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	// CallTool executes a tool and returns its result
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error)
}

// ToolServerFactory creates an unstarted ToolServer for launch parameters.
type ToolServerFactory func(p params.StdioParams) ToolServer

// Compile-time interface compliance check
var _ ToolServer = (*StdioServer)(nil)

func defaultToolServerFactory(p params.StdioParams) ToolServer {
	return NewStdioServer(p, false)
}
