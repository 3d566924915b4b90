// Package mcpserver manages the lifecycle of resolved tool servers.
//
// A Manager takes the records produced by package params and prepares the ones
// that need it: a repository is cloned into the cache directory (an existing
// checkout is reused as-is), the record's working directory is pointed at the
// checkout, and the setup script is written to setup_temp.sh and executed
// there. Failures are reported as *api.SetupError and recorded per server;
// one failing server never stops the others from being prepared.
//
// # Lifecycle
//
// Each server moves through the states
//
//	resolved -> repository_cloned -> setup_complete -> ready
//
// with failed reachable from any setup step. Servers without a repository or
// setup script start in ready. Adapters are refused for failed servers and
// servers that have not been prepared yet are set up on first use.
//
// # Adapters
//
// Servers are exposed to agent frameworks in three shapes:
//
//   - MakeOpenAIMCPServer returns an unstarted StdioServer with tool list
//     caching enabled; the caller starts and closes it.
//   - GetLangChainMCPTools returns string-in/string-out tools.
//   - MakeAutogenMCPAdapters returns one AutogenToolAdapter per tool, each
//     carrying its JSON schema and convertible to an OpenAI tool definition.
//
// The last two open a server session to list tools and close it before
// returning. Every tool invocation runs in its own short-lived session.
package mcpserver
