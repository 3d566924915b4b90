// Package logging provides the structured logger used across mcphub.
//
// It wraps Go's slog text handler behind package-level helpers that tag every
// entry with a subsystem name, so output from the config store, the resolver
// and the server lifecycle manager can be told apart at a glance.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Params", "Resolved %d servers from %s", n, path)
//	logging.Debug("MCPServerManager", "Reusing cached repository at %s", dir)
//	logging.Error("MCPServerManager", err, "Setup failed for %s", name)
//
// # Subsystems
//
//   - ConfigStore: reading and writing the user config file
//   - Catalog: loading the bundled preconfigured servers
//   - Registry: adding and removing catalog servers in the user config
//   - Params: merging user entries with the catalog
//   - MCPServerManager: repository cloning and setup scripts
//   - StdioServer: tool server process handles
//   - Desktop: desktop application config patching
//   - CLI: command line front end
//
// Before InitForCLI is called all helpers are no-ops.
package logging
