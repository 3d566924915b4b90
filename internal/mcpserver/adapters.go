package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mcphub/internal/params"
	"mcphub/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sashabaranov/go-openai"
)

// MakeOpenAIMCPServer returns an unstarted stdio server handle for name with
// tool list caching enabled. The caller owns its lifecycle.
func (m *Manager) MakeOpenAIMCPServer(ctx context.Context, name string) (*StdioServer, error) {
	p, err := m.ensureReady(ctx, name)
	if err != nil {
		return nil, err
	}
	return NewStdioServer(p, true), nil
}

// ListTools starts the server for name, lists its tools and stops it again
func (m *Manager) ListTools(ctx context.Context, name string) ([]mcp.Tool, error) {
	p, err := m.ensureReady(ctx, name)
	if err != nil {
		return nil, err
	}

	var tools []mcp.Tool
	err = withToolServer(ctx, m.newToolServer, p, func(ts ToolServer) error {
		var listErr error
		tools, listErr = ts.ListTools(ctx)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools of %s: %w", name, err)
	}
	return tools, nil
}

// withToolServer runs fn against a freshly initialized server and always
// closes it afterwards.
func withToolServer(ctx context.Context, factory ToolServerFactory, p params.StdioParams, fn func(ToolServer) error) (err error) {
	ts := factory(p)
	defer func() {
		if closeErr := ts.Close(); closeErr != nil {
			logging.Debug("MCPServerManager", "Error closing tool server %s: %v", p.Command, closeErr)
		}
	}()

	if err := ts.Initialize(ctx); err != nil {
		return err
	}
	return fn(ts)
}

// LangChainTool is a tool that takes a string input and returns a string
// output, the shape LangChain-style agents consume.
type LangChainTool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
}

type langChainTool struct {
	tool    mcp.Tool
	params  params.StdioParams
	factory ToolServerFactory
}

func (t *langChainTool) Name() string        { return t.tool.Name }
func (t *langChainTool) Description() string { return t.tool.Description }

// Call parses input as a JSON object of arguments. Empty input means no
// arguments.
func (t *langChainTool) Call(ctx context.Context, input string) (string, error) {
	args, err := parseToolInput(input)
	if err != nil {
		return "", fmt.Errorf("invalid input for tool %s: %w", t.tool.Name, err)
	}

	var out string
	err = withToolServer(ctx, t.factory, t.params, func(ts ToolServer) error {
		result, callErr := ts.CallTool(ctx, t.tool.Name, args)
		if callErr != nil {
			return callErr
		}
		text := ResultText(result)
		if result.IsError {
			return fmt.Errorf("tool %s returned an error: %s", t.tool.Name, text)
		}
		out = text
		return nil
	})
	return out, err
}

// GetLangChainMCPTools lists the tools of name and wraps each one as a
// LangChainTool. Every tool call runs in its own server session.
func (m *Manager) GetLangChainMCPTools(ctx context.Context, name string) ([]LangChainTool, error) {
	p, err := m.ensureReady(ctx, name)
	if err != nil {
		return nil, err
	}
	tools, err := m.ListTools(ctx, name)
	if err != nil {
		return nil, err
	}

	result := make([]LangChainTool, 0, len(tools))
	for _, tool := range tools {
		result = append(result, &langChainTool{tool: tool, params: p, factory: m.newToolServer})
	}
	return result, nil
}

// AutogenToolAdapter exposes one server tool with its JSON schema so it can
// be registered with a function-calling agent.
type AutogenToolAdapter struct {
	tool    mcp.Tool
	params  params.StdioParams
	factory ToolServerFactory
}

// NewAutogenToolAdapter wraps tool. A nil factory launches real stdio servers.
func NewAutogenToolAdapter(p params.StdioParams, tool mcp.Tool, factory ToolServerFactory) *AutogenToolAdapter {
	if factory == nil {
		factory = defaultToolServerFactory
	}
	return &AutogenToolAdapter{tool: tool, params: p, factory: factory}
}

// Name returns the tool name
func (a *AutogenToolAdapter) Name() string { return a.tool.Name }

// Description returns the tool description
func (a *AutogenToolAdapter) Description() string { return a.tool.Description }

// Tool returns the wrapped tool definition
func (a *AutogenToolAdapter) Tool() mcp.Tool { return a.tool }

// Schema returns the tool's input schema as raw JSON
func (a *AutogenToolAdapter) Schema() (json.RawMessage, error) {
	if len(a.tool.RawInputSchema) > 0 {
		return append(json.RawMessage(nil), a.tool.RawInputSchema...), nil
	}
	data, err := json.Marshal(a.tool.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema of %s: %w", a.tool.Name, err)
	}
	return data, nil
}

// OpenAITool converts the adapter into an OpenAI function tool definition
func (a *AutogenToolAdapter) OpenAITool() (openai.Tool, error) {
	schema, err := a.Schema()
	if err != nil {
		return openai.Tool{}, err
	}
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        a.tool.Name,
			Description: a.tool.Description,
			Parameters:  schema,
		},
	}, nil
}

// Run executes the tool with args in a fresh server session
func (a *AutogenToolAdapter) Run(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	var result *mcp.CallToolResult
	err := withToolServer(ctx, a.factory, a.params, func(ts ToolServer) error {
		var callErr error
		result, callErr = ts.CallTool(ctx, a.tool.Name, args)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run tool %s: %w", a.tool.Name, err)
	}
	return result, nil
}

// MakeAutogenMCPAdapters builds one adapter per tool of name, in the order
// the server lists them.
func (m *Manager) MakeAutogenMCPAdapters(ctx context.Context, name string) ([]*AutogenToolAdapter, error) {
	p, err := m.ensureReady(ctx, name)
	if err != nil {
		return nil, err
	}
	tools, err := m.ListTools(ctx, name)
	if err != nil {
		return nil, err
	}

	adapters := make([]*AutogenToolAdapter, 0, len(tools))
	for _, tool := range tools {
		adapters = append(adapters, NewAutogenToolAdapter(p, tool, m.newToolServer))
	}
	return adapters, nil
}

// ResultText joins the text content of a tool result
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var parts []string
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func parseToolInput(input string) (map[string]interface{}, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return nil, err
	}
	return args, nil
}
