package cmd

import (
	"fmt"
	"io"
	"time"

	"mcphub/internal/api"
	"mcphub/internal/formatting"
	"mcphub/internal/mcpserver"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	setupOutputFormat string
	setupQuiet        bool
)

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup [name...]",
		Short: "Clone repositories and run setup scripts",
		Long: `Prepares servers that declare a repo_url or setup_script. Repositories are
cloned into the cache directory once and reused afterwards; setup scripts run
every time. Without arguments every configured server is prepared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatting.ParseFormat(setupOutputFormat)
			if err != nil {
				return err
			}

			opts := mcpserver.Options{SkipInitialSetup: true}
			return withManager(cmd.Context(), opts, func(m *mcpserver.Manager) error {
				stop := startSpinner(cmd.ErrOrStderr(), " Preparing servers...", setupQuiet || format != formatting.FormatTable)
				results, err := runSetup(cmd, m, args)
				stop()
				if err != nil {
					return err
				}

				rows := make([]formatting.SetupRow, 0, len(results))
				for _, r := range results {
					rows = append(rows, setupRow(m, r))
				}
				if err := formatting.NewFormatter(formatting.Options{
					Format: format,
					Out:    cmd.OutOrStdout(),
				}).FormatSetupResults(rows); err != nil {
					return err
				}

				return firstSetupFailure(results)
			})
		},
	}

	cmd.Flags().StringVarP(&setupOutputFormat, "output", "o", "table", "output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&setupQuiet, "quiet", "q", false, "suppress the progress spinner")
	return cmd
}

// runSetup prepares the named servers, or all of them when names is empty.
func runSetup(cmd *cobra.Command, m *mcpserver.Manager, names []string) ([]mcpserver.SetupResult, error) {
	if len(names) == 0 {
		return m.SetupAll(cmd.Context()), nil
	}

	p := m.Params()
	results := make([]mcpserver.SetupResult, 0, len(names))
	for _, name := range names {
		rec, ok := p.RetrieveServerParams(name)
		if !ok {
			if err, failed := p.Errors()[name]; failed {
				return nil, err
			}
			return nil, api.NewServerConfigNotFoundError(name)
		}

		result := mcpserver.SetupResult{Name: name, PackageName: rec.PackageName}
		result.Err = m.SetupServer(cmd.Context(), rec)
		if updated, ok := p.RetrieveServerParams(name); ok {
			result.Path = updated.Cwd
		}
		results = append(results, result)
	}
	return results, nil
}

func setupRow(m *mcpserver.Manager, r mcpserver.SetupResult) formatting.SetupRow {
	row := formatting.SetupRow{Name: r.Name, Path: r.Path}
	if state, ok := m.State(r.Name); ok {
		row.State = string(state)
	}
	if r.Err != nil {
		row.Error = r.Err.Error()
	}
	return row
}

func firstSetupFailure(results []mcpserver.SetupResult) error {
	failed := 0
	var first error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
		}
	}
	if first == nil {
		return nil
	}
	return fmt.Errorf("%d of %d servers failed setup: %w", failed, len(results), first)
}

// startSpinner shows a progress spinner on w and returns the function that stops it.
func startSpinner(w io.Writer, suffix string, disabled bool) func() {
	if disabled {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
