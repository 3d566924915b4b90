package mcpserver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"mcphub/internal/params"
	"mcphub/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

// DefaultStdioInitTimeout is the default timeout for stdio server initialization.
// This covers the time needed to start the subprocess and complete the MCP handshake.
const DefaultStdioInitTimeout = 10 * time.Second

// StdioServer is a process handle for a tool server speaking MCP over stdio.
// When cacheToolsList is set, the first successful ListTools result is reused
// by later calls until InvalidateToolsCache or Close.
type StdioServer struct {
	mu             sync.RWMutex
	params         params.StdioParams
	cacheToolsList bool

	client    client.MCPClient
	connected bool

	cachedTools []mcp.Tool
	toolsCached bool
}

// NewStdioServer creates a handle for the given launch parameters. The process
// is not started until Initialize.
func NewStdioServer(p params.StdioParams, cacheToolsList bool) *StdioServer {
	return &StdioServer{
		params:         p,
		cacheToolsList: cacheToolsList,
	}
}

// Params returns the launch parameters
func (s *StdioServer) Params() params.StdioParams {
	return s.params
}

// CacheToolsList reports whether tool listings are cached across calls
func (s *StdioServer) CacheToolsList() bool {
	return s.cacheToolsList
}

// Initialize starts the subprocess and performs the protocol handshake
func (s *StdioServer) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	logging.Debug("StdioServer", "Starting %s %v in %q", s.params.Command, s.params.Args, s.params.Cwd)

	mcpClient, err := client.NewStdioMCPClientWithOptions(
		s.params.Command,
		envSlice(s.params.Env),
		s.params.Args,
		transport.WithCommandFunc(s.command),
	)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", s.params.Command, err)
	}

	// If no timeout in context, add a reasonable default
	initCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, DefaultStdioInitTimeout)
		defer cancel()
	}

	initResult, err := mcpClient.Initialize(initCtx, mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "mcphub",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	})
	if err != nil {
		logging.Error("StdioServer", err, "Failed to initialize MCP protocol for %s", s.params.Command)
		if closeErr := mcpClient.Close(); closeErr != nil {
			logging.Debug("StdioServer", "Error closing failed client for %s: %v", s.params.Command, closeErr)
		}
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	s.client = mcpClient
	s.connected = true

	if initResult.Capabilities.Tools == nil {
		logging.Debug("StdioServer", "Server %s does not advertise tool support", s.params.Command)
	}
	return nil
}

// command builds the subprocess so it runs in the configured working directory.
func (s *StdioServer) command(ctx context.Context, command string, env []string, args []string) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Dir = s.params.Cwd
	return cmd, nil
}

// Close terminates the subprocess and drops the tool cache
func (s *StdioServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cachedTools = nil
	s.toolsCached = false

	if !s.connected || s.client == nil {
		return nil
	}

	err := s.client.Close()
	s.connected = false
	s.client = nil
	return err
}

// ListTools returns the tools advertised by the server
func (s *StdioServer) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected || s.client == nil {
		return nil, fmt.Errorf("client not connected")
	}
	if s.cacheToolsList && s.toolsCached {
		return append([]mcp.Tool(nil), s.cachedTools...), nil
	}

	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	if s.cacheToolsList {
		s.cachedTools = append([]mcp.Tool(nil), result.Tools...)
		s.toolsCached = true
	}
	return result.Tools, nil
}

// InvalidateToolsCache forces the next ListTools to query the server
func (s *StdioServer) InvalidateToolsCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cachedTools = nil
	s.toolsCached = false
}

// CallTool executes a specific tool and returns the result
func (s *StdioServer) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected || s.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	result, err := s.client.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call tool: %w", err)
	}
	return result, nil
}

// GetStderr returns a reader for the stderr output of the subprocess
func (s *StdioServer) GetStderr() (io.Reader, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected || s.client == nil {
		return nil, false
	}

	// Type assert to *client.Client as GetStderr expects the concrete type
	if concreteClient, ok := s.client.(*client.Client); ok {
		return client.GetStderr(concreteClient)
	}
	return nil, false
}

// envSlice converts an env map into KEY=VALUE pairs in a stable order.
func envSlice(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return result
}
