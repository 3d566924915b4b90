// Package formatting renders server, tool and setup listings for the CLI in
// table, JSON or YAML form.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseFormat maps a --output flag value to an OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", s)
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Out    io.Writer
}

// ServerRow is one line of a server listing.
type ServerRow struct {
	Name        string   `json:"name" yaml:"name"`
	PackageName string   `json:"package_name,omitempty" yaml:"package_name,omitempty"`
	Command     string   `json:"command,omitempty" yaml:"command,omitempty"`
	Args        []string `json:"args,omitempty" yaml:"args,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Configured  bool     `json:"configured" yaml:"configured"`
}

// SetupRow is the outcome of preparing one server.
type SetupRow struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	State string `json:"state" yaml:"state"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Formatter renders listings to a writer
type Formatter interface {
	FormatServers(servers []ServerRow) error
	FormatTools(server string, tools []mcp.Tool) error
	FormatSetupResults(results []SetupRow) error
}

// NewFormatter returns the formatter for options.Format
func NewFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	default:
		return NewTableFormatter(options)
	}
}

// toolRow is the serialised form of a tool in JSON and YAML output.
type toolRow struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func toolRows(tools []mcp.Tool) []toolRow {
	rows := make([]toolRow, 0, len(tools))
	for _, tool := range tools {
		rows = append(rows, toolRow{Name: tool.Name, Description: tool.Description})
	}
	return rows
}
