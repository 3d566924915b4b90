package cmd

import (
	"context"
	"os"

	"mcphub/internal/config"
	"mcphub/internal/mcpserver"
	"mcphub/internal/params"
	"mcphub/pkg/logging"

	"go.uber.org/dig"
)

// settings are the resolved locations every command works with.
type settings struct {
	ConfigPath  string
	CatalogPath string
	CacheDir    string
}

// resolveSettings applies flag > environment > default precedence.
func resolveSettings() (settings, error) {
	s := settings{
		ConfigPath:  rootConfigPath,
		CatalogPath: rootCatalogPath,
		CacheDir:    rootCacheDir,
	}

	if s.ConfigPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return settings{}, err
		}
		s.ConfigPath = p
	}
	if s.CatalogPath == "" {
		s.CatalogPath = os.Getenv(config.CatalogPathEnvVar)
	}
	if s.CacheDir == "" {
		dir, err := config.DefaultCacheDir()
		if err != nil {
			return settings{}, err
		}
		s.CacheDir = dir
	}

	logging.Debug("CLI", "Using config %s, catalog %q, cache %s", s.ConfigPath, s.CatalogPath, s.CacheDir)
	return s, nil
}

// managerSetup carries the per-command construction inputs of the manager.
type managerSetup struct {
	Ctx     context.Context
	Options mcpserver.Options
}

// newContainer registers the constructors for the command's services.
// Nothing is built until a command invokes it.
func newContainer(s settings, ms managerSetup) (*dig.Container, error) {
	c := dig.New()

	providers := []interface{}{
		func() settings { return s },
		func() managerSetup { return ms },
		newCatalog,
		newStore,
		config.NewRegistry,
		newParams,
		newManager,
	}
	for _, p := range providers {
		if err := c.Provide(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newCatalog(s settings) (config.Catalog, error) {
	if s.CatalogPath == "" {
		return config.DefaultCatalog()
	}
	return config.LoadCatalog(s.CatalogPath)
}

func newStore(s settings) *config.Store {
	return config.NewStore(s.ConfigPath)
}

func newParams(s settings, catalog config.Catalog) (*params.Params, error) {
	return params.New(s.ConfigPath, params.Options{Catalog: catalog})
}

func newManager(s settings, ms managerSetup, p *params.Params) (*mcpserver.Manager, error) {
	opts := ms.Options
	if opts.CacheDir == "" {
		opts.CacheDir = s.CacheDir
	}
	ctx := ms.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return mcpserver.NewManager(ctx, p, opts)
}

// withRegistry runs fn with the config registry for the current settings.
func withRegistry(fn func(*config.Registry) error) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	c, err := newContainer(s, managerSetup{})
	if err != nil {
		return err
	}
	var fnErr error
	if err := c.Invoke(func(r *config.Registry) { fnErr = fn(r) }); err != nil {
		return dig.RootCause(err)
	}
	return fnErr
}

// withManager runs fn with a lifecycle manager over the current config.
func withManager(ctx context.Context, opts mcpserver.Options, fn func(*mcpserver.Manager) error) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	c, err := newContainer(s, managerSetup{Ctx: ctx, Options: opts})
	if err != nil {
		return err
	}
	var fnErr error
	if err := c.Invoke(func(m *mcpserver.Manager) { fnErr = fn(m) }); err != nil {
		return dig.RootCause(err)
	}
	return fnErr
}
