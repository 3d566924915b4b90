package formatting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	out io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	return &JSONFormatter{out: out}
}

// FormatServers writes the server rows as a JSON array
func (f *JSONFormatter) FormatServers(servers []ServerRow) error {
	if servers == nil {
		servers = []ServerRow{}
	}
	return f.write(servers)
}

// FormatTools writes the tools of a server as a JSON object
func (f *JSONFormatter) FormatTools(server string, tools []mcp.Tool) error {
	return f.write(map[string]interface{}{
		"server": server,
		"tools":  toolRows(tools),
		"count":  len(tools),
	})
}

// FormatSetupResults writes setup outcomes as a JSON array
func (f *JSONFormatter) FormatSetupResults(results []SetupRow) error {
	if results == nil {
		results = []SetupRow{}
	}
	return f.write(results)
}

func (f *JSONFormatter) write(v interface{}) error {
	fmt.Fprintln(f.out, PrettyJSON(v))
	return nil
}

// PrettyJSON formats any value as indented JSON for human-readable display.
// Values that cannot be marshaled fall back to their %v representation.
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
