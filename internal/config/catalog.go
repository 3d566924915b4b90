package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"mcphub/pkg/logging"

	"sigs.k8s.io/yaml"
)

//go:embed catalog/preconfigured_servers.json
var embeddedCatalog []byte

// catalogWrapperKey is the optional top-level key grouping catalog entries.
const catalogWrapperKey = "mcpServers"

// Catalog is the read-only set of preconfigured servers, keyed by package name.
type Catalog map[string]ServerEntry

// DefaultCatalog returns the catalog bundled into the binary
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(embeddedCatalog, "embedded catalog")
}

// LoadCatalog reads a catalog file in JSON or YAML. A missing file is not an
// error: it yields an empty catalog.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warn("Catalog", "No catalog found at %s, continuing with an empty catalog", path)
			return Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(data, path)
}

// ParseCatalog decodes catalog data. Entries may sit at the top level or under
// an "mcpServers" key. Entries without a package_name inherit their key.
func ParseCatalog(data []byte, source string) (Catalog, error) {
	var raw map[string]json.RawMessage
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}

	if wrapped, ok := raw[catalogWrapperKey]; ok && len(raw) == 1 {
		raw = nil
		if err := json.Unmarshal(wrapped, &raw); err != nil {
			return nil, &ParseError{Path: source, Err: err}
		}
	}

	catalog := make(Catalog, len(raw))
	for key, value := range raw {
		var entry ServerEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return nil, &ParseError{Path: source, Err: fmt.Errorf("entry %q: %w", key, err)}
		}
		if entry.PackageName == "" {
			entry.PackageName = key
		}
		catalog[key] = entry
	}

	logging.Debug("Catalog", "Loaded %d preconfigured servers from %s", len(catalog), source)
	return catalog, nil
}

// Lookup returns a copy of the entry for packageName
func (c Catalog) Lookup(packageName string) (ServerEntry, bool) {
	entry, ok := c[packageName]
	if !ok {
		return ServerEntry{}, false
	}
	return entry.clone(), true
}

// Names returns the catalog keys in lexical order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
