package cmd

import (
	"context"
	"time"

	"mcphub/internal/formatting"
	"mcphub/internal/mcpserver"

	"github.com/spf13/cobra"
)

var (
	toolsOutputFormat string
	toolsTimeout      time.Duration
	toolsQuiet        bool
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools <name>",
		Short: "List the tools a server exposes",
		Long:  `Starts the server, lists its tools and stops it again. Servers that need setup are prepared first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatting.ParseFormat(toolsOutputFormat)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, toolsTimeout)
			defer cancel()

			name := args[0]
			opts := mcpserver.Options{SkipInitialSetup: true}
			return withManager(ctx, opts, func(m *mcpserver.Manager) error {
				stop := startSpinner(cmd.ErrOrStderr(), " Listing tools of "+name+"...", toolsQuiet || format != formatting.FormatTable)
				tools, err := m.ListTools(ctx, name)
				stop()
				if err != nil {
					return err
				}

				return formatting.NewFormatter(formatting.Options{
					Format: format,
					Out:    cmd.OutOrStdout(),
				}).FormatTools(name, tools)
			})
		},
	}

	cmd.Flags().StringVarP(&toolsOutputFormat, "output", "o", "table", "output format (table, json, yaml)")
	cmd.Flags().DurationVar(&toolsTimeout, "timeout", 2*time.Minute, "time allowed for setup and listing")
	cmd.Flags().BoolVarP(&toolsQuiet, "quiet", "q", false, "suppress the progress spinner")
	return cmd
}
