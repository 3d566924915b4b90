package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"mcphub/pkg/logging"
)

// Store reads and writes the user config file. Every mutation reads the whole
// file, changes it in memory and writes it back; concurrent external writers
// race and the last writer wins.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store for the config file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// ReadUserConfig strictly reads the config file at path. A missing file yields
// an error satisfying errors.Is(err, fs.ErrNotExist); malformed JSON yields a
// *ParseError.
func ReadUserConfig(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := NewUserConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]ServerEntry)
	}

	logging.Debug("ConfigStore", "Read %d server entries from %s", len(cfg.MCPServers), path)
	return cfg, nil
}

// Load returns the stored config, or an empty config if the file does not exist yet
func (s *Store) Load() (*UserConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*UserConfig, error) {
	cfg, err := ReadUserConfig(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("ConfigStore", "No config file at %s, using empty config", s.path)
			return NewUserConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the config file with 2-space indentation
func (s *Store) Save(cfg *UserConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

func (s *Store) save(cfg *UserConfig) error {
	if cfg == nil {
		cfg = NewUserConfig()
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]ServerEntry)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", s.path, err)
	}

	logging.Info("ConfigStore", "Saved %d server entries to %s", len(cfg.MCPServers), s.path)
	return nil
}

// Init writes an empty config if none exists. It reports whether a file was created.
func (s *Store) Init() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	if err := s.save(NewUserConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// AddServer stores entry under name, replacing any existing entry
func (s *Store) AddServer(name string, entry ServerEntry) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	cfg.MCPServers[name] = entry
	return s.save(cfg)
}

// RemoveServer deletes the entry for name. It reports false if there was none.
func (s *Store) RemoveServer(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return false, err
	}
	if _, ok := cfg.MCPServers[name]; !ok {
		return false, nil
	}
	delete(cfg.MCPServers, name)
	if err := s.save(cfg); err != nil {
		return false, err
	}
	return true, nil
}

// ListServers returns all configured entries
func (s *Store) ListServers() (map[string]ServerEntry, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	return cfg.MCPServers, nil
}

// SortedNames returns the keys of servers in lexical order
func SortedNames(servers map[string]ServerEntry) []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
