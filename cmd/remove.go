package cmd

import (
	"fmt"

	"mcphub/internal/api"
	"mcphub/internal/config"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a server from .mcphub.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return withRegistry(func(r *config.Registry) error {
				removed, err := r.Remove(name)
				if err != nil {
					return err
				}
				if !removed {
					return api.NewServerConfigNotFoundErrorWithMessage(name,
						fmt.Sprintf("server %q is not in %s", name, r.Store().Path()))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", text.FgGreen.Sprint("✓"), name)
				return nil
			})
		},
	}
}
