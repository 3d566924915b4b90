package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"mcphub/internal/config"
	"mcphub/internal/desktop"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

const (
	clientDefault = "default"
	clientClaude  = "claude"
)

var (
	addNonInteractive bool
	addClient         string
)

// newPrompter is swapped in tests
var newPrompter = func() config.Prompter { return &readlinePrompter{} }

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a preconfigured server to .mcphub.json",
		Long: `Copies a server from the catalog of preconfigured servers into the config file.

Environment values of the form ${NAME} are prompted for unless -n is given;
values left empty stay as templates. With --client claude the server is also
registered with the Claude desktop application.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&addNonInteractive, "non-interactive", "n", false, "do not prompt for environment variables")
	cmd.Flags().StringVar(&addClient, "client", clientDefault, "client to register the server with (default, claude)")
	return cmd
}

func runAdd(cmd *cobra.Command, name string) error {
	if addClient != clientDefault && addClient != clientClaude {
		return fmt.Errorf("unsupported client %q (want %s or %s)", addClient, clientDefault, clientClaude)
	}

	return withRegistry(func(r *config.Registry) error {
		result, err := r.AddFromCatalog(name, config.AddOptions{
			Interactive:  !addNonInteractive,
			SaveToConfig: true,
			Prompter:     newPrompter(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Added %s to %s\n", text.FgGreen.Sprint("✓"), name, r.Store().Path())

		if len(result.MissingEnvVars) > 0 {
			fmt.Fprintf(out, "%s The following environment variables are not set: %s\n",
				text.FgYellow.Sprint("!"), strings.Join(result.MissingEnvVars, ", "))
			fmt.Fprintf(out, "  Set them in your environment or edit %s\n", r.Store().Path())
		}

		if addClient == clientClaude {
			home, _ := os.UserHomeDir()
			path, err := desktop.ConfigPath(runtime.GOOS, home, os.Getenv("AppData"))
			if err != nil {
				return err
			}
			if err := desktop.Apply(path, name, result.Entry); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Registered %s in %s\n", text.FgGreen.Sprint("✓"), name, path)
		}
		return nil
	})
}
