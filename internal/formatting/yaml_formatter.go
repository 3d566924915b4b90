package formatting

import (
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	out io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	return &YAMLFormatter{out: out}
}

// FormatServers writes the server rows as a YAML sequence
func (f *YAMLFormatter) FormatServers(servers []ServerRow) error {
	if servers == nil {
		servers = []ServerRow{}
	}
	return f.write(servers)
}

// FormatTools writes the tools of a server as a YAML document
func (f *YAMLFormatter) FormatTools(server string, tools []mcp.Tool) error {
	return f.write(struct {
		Server string    `yaml:"server"`
		Tools  []toolRow `yaml:"tools"`
		Count  int       `yaml:"count"`
	}{server, toolRows(tools), len(tools)})
}

// FormatSetupResults writes setup outcomes as a YAML sequence
func (f *YAMLFormatter) FormatSetupResults(results []SetupRow) error {
	if results == nil {
		results = []SetupRow{}
	}
	return f.write(results)
}

func (f *YAMLFormatter) write(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = f.out.Write(data)
	return err
}
