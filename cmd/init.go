package cmd

import (
	"fmt"

	"mcphub/internal/config"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty .mcphub.json",
		Long:  `Creates the server config file with an empty mcpServers map. An existing file is left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(r *config.Registry) error {
				created, err := r.Store().Init()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if created {
					fmt.Fprintf(out, "%s Created %s\n", text.FgGreen.Sprint("✓"), r.Store().Path())
				} else {
					fmt.Fprintf(out, "%s already exists\n", r.Store().Path())
				}
				return nil
			})
		},
	}
}
