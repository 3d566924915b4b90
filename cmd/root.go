package cmd

import (
	"errors"
	"os"

	"mcphub/internal/api"
	"mcphub/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeNotFound indicates the named server is not configured or not in the catalog.
	ExitCodeNotFound = 2
	// ExitCodeSetupFailed indicates cloning a repository or running a setup script failed.
	ExitCodeSetupFailed = 3
)

var (
	rootConfigPath  string
	rootCatalogPath string
	rootCacheDir    string
	rootLogLevel    string
)

// rootCmd represents the base command for the mcphub application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcphub",
	Short: "Configure, prepare and inspect MCP tool servers",
	Long: `mcphub resolves the MCP servers named in .mcphub.json against a catalog of
preconfigured servers, clones and sets up the ones that need it, and lists
the tools they expose.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(rootLogLevel)
		if err != nil {
			return err
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
		return nil
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcphub version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if api.IsServerConfigNotFound(err) {
		return ExitCodeNotFound
	}

	var setupErr *api.SetupError
	if errors.As(err, &setupErr) {
		return ExitCodeSetupFailed
	}

	// Default to general error
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "path to the server config file (default $MCPHUB_CONFIG or ./.mcphub.json)")
	rootCmd.PersistentFlags().StringVar(&rootCatalogPath, "catalog", "", "catalog of preconfigured servers, JSON or YAML (default $MCPHUB_CATALOG or built-in)")
	rootCmd.PersistentFlags().StringVar(&rootCacheDir, "cache-dir", "", "directory repositories are cloned into (default $MCPHUB_CACHE_DIR or ~/.mcphub_cache)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newToolsCmd())
}
