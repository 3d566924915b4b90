package formatting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/mcp"
)

const maxDescriptionWidth = 60

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	out io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	return &TableFormatter{out: out}
}

// FormatServers renders servers as a table
func (f *TableFormatter) FormatServers(servers []ServerRow) error {
	if len(servers) == 0 {
		f.formatEmptyMessage("📋", "No servers found")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("PACKAGE"),
		text.FgHiCyan.Sprint("COMMAND"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
		text.FgHiCyan.Sprint("TAGS"),
		text.FgHiCyan.Sprint("CONFIGURED"),
	})

	configured := 0
	for _, s := range servers {
		mark := text.FgHiBlack.Sprint("-")
		if s.Configured {
			mark = text.FgGreen.Sprint("✓")
			configured++
		}
		t.AppendRow(table.Row{
			text.FgHiWhite.Sprint(s.Name),
			s.PackageName,
			strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " ")),
			truncate(s.Description, maxDescriptionWidth),
			strings.Join(s.Tags, ", "),
			mark,
		})
	}
	t.Render()

	fmt.Fprintf(f.out, "\n%s %s %s %s\n",
		text.FgHiBlue.Sprint("Total:"),
		text.FgHiWhite.Sprint(len(servers)),
		text.FgHiBlue.Sprint("servers, configured:"),
		text.FgHiWhite.Sprint(configured))
	return nil
}

// FormatTools renders the tools advertised by a server
func (f *TableFormatter) FormatTools(server string, tools []mcp.Tool) error {
	if len(tools) == 0 {
		f.formatEmptyMessage("📋", fmt.Sprintf("No tools found for %s", server))
		return nil
	}

	t := f.createTable()
	t.SetTitle(server)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("TOOL"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
	})
	for _, tool := range tools {
		t.AppendRow(table.Row{
			text.FgHiWhite.Sprint(tool.Name),
			truncate(tool.Description, maxDescriptionWidth),
		})
	}
	t.Render()

	fmt.Fprintf(f.out, "\n%s %s %s\n",
		text.FgHiBlue.Sprint("Total:"),
		text.FgHiWhite.Sprint(len(tools)),
		text.FgHiBlue.Sprint("tools"))
	return nil
}

// FormatSetupResults renders setup outcomes, one row per server
func (f *TableFormatter) FormatSetupResults(results []SetupRow) error {
	if len(results) == 0 {
		f.formatEmptyMessage("📋", "No servers need setup")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("STATE"),
		text.FgHiCyan.Sprint("PATH"),
		text.FgHiCyan.Sprint("ERROR"),
	})
	for _, r := range results {
		state := text.FgGreen.Sprint(r.State)
		if r.Error != "" {
			state = text.FgRed.Sprint(r.State)
		}
		t.AppendRow(table.Row{
			text.FgHiWhite.Sprint(r.Name),
			state,
			r.Path,
			truncate(r.Error, maxDescriptionWidth*2),
		})
	}
	t.Render()
	return nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleRounded)
	return t
}

// formatEmptyMessage writes an empty result message
func (f *TableFormatter) formatEmptyMessage(icon, message string) {
	fmt.Fprintf(f.out, "%s %s\n", text.FgYellow.Sprint(icon), text.FgYellow.Sprint(message))
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
