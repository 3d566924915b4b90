package config

import (
	"fmt"

	"mcphub/internal/api"
	"mcphub/pkg/logging"
)

// Prompter asks the user for values of template variables. Variables the user
// skips are left out of the returned map.
type Prompter interface {
	PromptEnvVars(vars []string) (map[string]string, error)
}

// AddOptions controls Registry.AddFromCatalog
type AddOptions struct {
	// Interactive prompts for template variables through Prompter
	Interactive bool
	// SaveToConfig writes the entry to the user config file
	SaveToConfig bool
	// Prompter is required when Interactive is set
	Prompter Prompter
}

// AddResult describes what AddFromCatalog did
type AddResult struct {
	Entry          ServerEntry
	Saved          bool
	MissingEnvVars []string
}

// Registry combines the user config store with the catalog for the
// add/remove/list workflows of the command line.
type Registry struct {
	store     *Store
	catalog   Catalog
	lookupEnv func(string) (string, bool)
}

// NewRegistry creates a Registry. A nil catalog is treated as empty.
func NewRegistry(store *Store, catalog Catalog) *Registry {
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Registry{store: store, catalog: catalog}
}

// Store returns the underlying config store
func (r *Registry) Store() *Store {
	return r.store
}

// AddFromCatalog copies the catalog entry name into the user config, after
// substituting any template values the prompter returns.
func (r *Registry) AddFromCatalog(name string, opts AddOptions) (*AddResult, error) {
	entry, ok := r.catalog.Lookup(name)
	if !ok {
		return nil, api.NewServerConfigNotFoundErrorWithMessage(name,
			fmt.Sprintf("server %q not found in preconfigured servers", name))
	}

	vars := DetectEnvVars(entry)
	values := map[string]string{}
	if len(vars) > 0 && opts.Interactive {
		if opts.Prompter == nil {
			return nil, fmt.Errorf("interactive add of %s requires a prompter", name)
		}
		prompted, err := opts.Prompter.PromptEnvVars(vars)
		if err != nil {
			return nil, fmt.Errorf("failed to read environment variables for %s: %w", name, err)
		}
		for k, v := range prompted {
			if v != "" {
				values[k] = v
			}
		}
		entry = ProcessEnvVars(entry, values)
	}

	result := &AddResult{
		Entry:          entry,
		MissingEnvVars: MissingEnvVars(vars, values, r.lookupEnv),
	}

	if opts.SaveToConfig {
		if err := r.store.AddServer(name, entry); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}
		result.Saved = true
	}

	logging.Info("Registry", "Added %s (saved: %t, missing env vars: %d)", name, result.Saved, len(result.MissingEnvVars))
	return result, nil
}

// Remove deletes name from the user config. It reports false when absent.
func (r *Registry) Remove(name string) (bool, error) {
	return r.store.RemoveServer(name)
}

// ListAvailable returns the catalog
func (r *Registry) ListAvailable() Catalog {
	return r.catalog
}

// ListConfigured returns the entries of the user config
func (r *Registry) ListConfigured() (map[string]ServerEntry, error) {
	return r.store.ListServers()
}
