package params

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"mcphub/internal/api"
	"mcphub/internal/config"
	"mcphub/pkg/logging"
)

// Options configures New.
type Options struct {
	// Catalog, when non-nil, is used as-is and CatalogPath is ignored.
	Catalog config.Catalog
	// CatalogPath points at a catalog file. Empty means the embedded catalog.
	CatalogPath string
}

// StdioParams is everything needed to launch a tool server process.
type StdioParams struct {
	Command string
	Args    []string
	Env     map[string]string
	Cwd     string
}

// Params resolves the servers of a user config file against the catalog.
// Resolution happens once, in New; afterwards the only mutation is
// UpdateServerPath.
type Params struct {
	mu         sync.RWMutex
	configPath string
	servers    map[string]*config.ServerConfig // server name -> resolved record
	byPackage  map[string]string               // package name -> server name
	errors     map[string]error                // server name -> resolution failure
}

// New loads the user config at configPath and resolves every entry.
//
// A missing file returns an error satisfying errors.Is(err, fs.ErrNotExist);
// malformed JSON returns a *config.ParseError. An entry that cannot be
// resolved does not fail New: it is left out of the resolved set and its
// error is available from Errors.
func New(configPath string, opts Options) (*Params, error) {
	userConfig, err := config.ReadUserConfig(configPath)
	if err != nil {
		return nil, err
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog, err = loadCatalog(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
	}

	p := &Params{
		configPath: configPath,
		servers:    make(map[string]*config.ServerConfig),
		byPackage:  make(map[string]string),
		errors:     make(map[string]error),
	}

	for _, name := range config.SortedNames(userConfig.MCPServers) {
		record, err := resolveEntry(name, userConfig.MCPServers[name], catalog)
		if err == nil {
			if owner, taken := p.byPackage[record.PackageName]; taken {
				err = api.NewServerConfigNotFoundErrorWithMessage(name,
					fmt.Sprintf("server %s: package %q is already used by server %s", name, record.PackageName, owner))
			}
		}
		if err != nil {
			logging.Warn("Params", "Skipping server %s: %v", name, err)
			p.errors[name] = err
			continue
		}

		p.servers[name] = &record
		p.byPackage[record.PackageName] = name
	}

	logging.Info("Params", "Resolved %d of %d servers from %s", len(p.servers), len(userConfig.MCPServers), configPath)
	return p, nil
}

func loadCatalog(path string) (config.Catalog, error) {
	if path == "" {
		return config.DefaultCatalog()
	}
	return config.LoadCatalog(path)
}

// resolveEntry applies the catalog override rule to a single user entry.
func resolveEntry(name string, entry config.ServerEntry, catalog config.Catalog) (config.ServerConfig, error) {
	packageName := entry.PackageName
	if packageName == "" {
		packageName = name
	}

	if base, ok := catalog.Lookup(packageName); ok {
		return base.Override(entry).Resolve(packageName), nil
	}
	if entry.IsSelfContained() {
		return entry.Resolve(packageName), nil
	}

	return config.ServerConfig{}, api.NewServerConfigNotFoundErrorWithMessage(packageName,
		fmt.Sprintf("server %s references package %q which is not in the catalog and has no command", name, packageName))
}

// ConfigPath returns the path of the user config file
func (p *Params) ConfigPath() string {
	return p.configPath
}

// ConfigDir returns the directory holding the user config file
func (p *Params) ConfigDir() string {
	dir, err := filepath.Abs(filepath.Dir(p.configPath))
	if err != nil {
		return filepath.Dir(p.configPath)
	}
	return dir
}

// Names returns the resolved server names in lexical order
func (p *Params) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.servers))
	for name := range p.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServersParams returns copies of all resolved records, ordered by server name
func (p *Params) ServersParams() []config.ServerConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.servers))
	for name := range p.servers {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]config.ServerConfig, 0, len(names))
	for _, name := range names {
		result = append(result, p.servers[name].Clone())
	}
	return result
}

// Errors returns the resolution failures keyed by server name
func (p *Params) Errors() map[string]error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(map[string]error, len(p.errors))
	for name, err := range p.errors {
		result[name] = err
	}
	return result
}

// RetrieveServerParams returns a copy of the record for the user-facing name.
// Absence is reported through the boolean, never as an error.
func (p *Params) RetrieveServerParams(name string) (config.ServerConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	record, ok := p.servers[name]
	if !ok {
		return config.ServerConfig{}, false
	}
	return record.Clone(), true
}

// NameForPackage returns the server name whose record has packageName
func (p *Params) NameForPackage(packageName string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	name, ok := p.byPackage[packageName]
	return name, ok
}

// ConvertToStdioParams builds the process launch parameters for name
func (p *Params) ConvertToStdioParams(name string) (StdioParams, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	record, ok := p.servers[name]
	if !ok {
		return StdioParams{}, api.NewServerConfigNotFoundError(name)
	}

	c := record.Clone()
	return StdioParams{
		Command: c.Command,
		Args:    c.Args,
		Env:     c.Env,
		Cwd:     c.Cwd,
	}, nil
}

// UpdateServerPath sets the working directory of the record for name
func (p *Params) UpdateServerPath(name, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	record, ok := p.servers[name]
	if !ok {
		return api.NewServerConfigNotFoundError(name)
	}
	record.Cwd = path

	logging.Debug("Params", "Updated working directory of %s to %s", name, path)
	return nil
}
