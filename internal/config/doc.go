// Package config provides the configuration sources of mcphub: the user config
// file and the bundled catalog of preconfigured servers.
//
// # User Config
//
// The user config is a JSON file, .mcphub.json in the working directory by
// default, with a single top-level key:
//
//	{
//	  "mcpServers": {
//	    "github": {
//	      "package_name": "github-mcp",
//	      "env": {"GITHUB_PERSONAL_ACCESS_TOKEN": "${GITHUB_PERSONAL_ACCESS_TOKEN}"}
//	    }
//	  }
//	}
//
// Store reads the whole file, mutates it in memory and writes it back with
// 2-space indentation. There is no locking across processes.
//
// # Catalog
//
// The catalog uses the same per-server object shape, keyed by package name.
// A copy is embedded in the binary; LoadCatalog reads an alternative file in
// JSON or YAML and treats a missing file as an empty catalog.
//
// # Entries and Records
//
// ServerEntry keeps track of which keys were present so a user entry can
// override a catalog entry field by field. ServerConfig is the flattened
// record produced once the override has been applied.
//
// # Templates
//
// Env values of the form ${NAME} are templates. They are substituted when a
// server is added from the catalog and otherwise kept verbatim.
package config
