package mcpserver

import (
	"context"
	"fmt"
	"sync"

	"mcphub/internal/api"
	"mcphub/internal/config"
	"mcphub/internal/params"
	"mcphub/pkg/logging"
)

// State is the lifecycle position of a server record.
type State string

const (
	// StateResolved means the record is resolved but setup has not run
	StateResolved State = "resolved"
	// StateRepositoryCloned means the repository is present in the cache
	StateRepositoryCloned State = "repository_cloned"
	// StateSetupComplete means the setup script finished
	StateSetupComplete State = "setup_complete"
	// StateReady means adapters can be built for the server
	StateReady State = "ready"
	// StateFailed means setup failed; adapters are refused
	StateFailed State = "failed"
)

// Options configures a Manager.
type Options struct {
	// CacheDir is where repositories are cloned. Defaults to config.DefaultCacheDir().
	CacheDir string
	// SkipInitialSetup defers setup until the first adapter request.
	SkipInitialSetup bool
	// NewToolServer overrides how tool server handles are created.
	NewToolServer ToolServerFactory
}

// SetupResult is the outcome of preparing one record during SetupAll.
type SetupResult struct {
	Name        string
	PackageName string
	Path        string
	Err         error
}

// Succeeded reports whether setup completed without error
func (r SetupResult) Succeeded() bool {
	return r.Err == nil
}

// Manager owns the lifecycle of resolved server records: it clones
// repositories, runs setup scripts, and hands out tool adapters.
type Manager struct {
	mu            sync.RWMutex
	params        *params.Params
	cacheDir      string
	newToolServer ToolServerFactory

	states   map[string]State
	failures map[string]error
	results  []SetupResult
}

// NewManager creates a Manager over p. Unless opts.SkipInitialSetup is set,
// every record that needs setup is prepared before returning. Individual setup
// failures are recorded and do not fail construction.
func NewManager(ctx context.Context, p *params.Params, opts Options) (*Manager, error) {
	if p == nil {
		return nil, fmt.Errorf("params must not be nil")
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		dir, err := config.DefaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine cache directory: %w", err)
		}
		cacheDir = dir
	}

	factory := opts.NewToolServer
	if factory == nil {
		factory = defaultToolServerFactory
	}

	m := &Manager{
		params:        p,
		cacheDir:      cacheDir,
		newToolServer: factory,
		states:        make(map[string]State),
		failures:      make(map[string]error),
	}

	for _, rec := range p.ServersParams() {
		name, _ := p.NameForPackage(rec.PackageName)
		if rec.NeedsSetup() {
			m.states[name] = StateResolved
		} else {
			m.states[name] = StateReady
		}
	}

	if !opts.SkipInitialSetup {
		results := m.SetupAll(ctx)
		failed := 0
		for _, r := range results {
			if !r.Succeeded() {
				failed++
			}
		}
		if failed > 0 {
			logging.Warn("MCPServerManager", "%d of %d servers failed setup", failed, len(results))
		}
	}

	return m, nil
}

// Params returns the underlying resolved parameters
func (m *Manager) Params() *params.Params {
	return m.params
}

// CacheDir returns the directory repositories are cloned into
func (m *Manager) CacheDir() string {
	return m.cacheDir
}

// State returns the lifecycle state for a server name
func (m *Manager) State(name string) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[name]
	return s, ok
}

// Failure returns the error that moved a server into StateFailed
func (m *Manager) Failure(name string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failures[name]
}

// SetupResults returns the results of the most recent SetupAll
func (m *Manager) SetupResults() []SetupResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]SetupResult(nil), m.results...)
}

// SetupAll prepares every record that needs setup, in name order. It never
// returns an error; failures are reported per record.
func (m *Manager) SetupAll(ctx context.Context) []SetupResult {
	var results []SetupResult
	for _, rec := range m.params.ServersParams() {
		if !rec.NeedsSetup() {
			continue
		}
		name, _ := m.params.NameForPackage(rec.PackageName)
		err := m.SetupServer(ctx, rec)
		if err != nil {
			logging.Error("MCPServerManager", err, "Setup failed for server %s", name)
		}

		result := SetupResult{Name: name, PackageName: rec.PackageName, Err: err}
		if updated, ok := m.params.RetrieveServerParams(name); ok {
			result.Path = updated.Cwd
		}
		results = append(results, result)
	}

	m.mu.Lock()
	m.results = results
	m.mu.Unlock()
	return results
}

func (m *Manager) setState(name string, state State, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[name] = state
	if err != nil {
		m.failures[name] = err
	} else {
		delete(m.failures, name)
	}
}

// ensureReady returns launch parameters for name, running setup first when the
// record has not been prepared yet.
func (m *Manager) ensureReady(ctx context.Context, name string) (params.StdioParams, error) {
	rec, ok := m.params.RetrieveServerParams(name)
	if !ok {
		if err := m.params.Errors()[name]; err != nil {
			return params.StdioParams{}, err
		}
		return params.StdioParams{}, api.NewServerConfigNotFoundError(name)
	}

	state, _ := m.State(name)
	switch state {
	case StateFailed:
		return params.StdioParams{}, fmt.Errorf("server %q failed setup: %w", name, m.Failure(name))
	case StateReady:
	default:
		if err := m.SetupServer(ctx, rec); err != nil {
			return params.StdioParams{}, err
		}
	}

	return m.params.ConvertToStdioParams(name)
}
