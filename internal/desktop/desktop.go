// Package desktop registers servers with the Claude desktop application by
// patching its claude_desktop_config.json.
package desktop

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mcphub/internal/config"
	"mcphub/pkg/logging"
)

// ConfigFileName is the desktop application's config file name
const ConfigFileName = "claude_desktop_config.json"

// ErrUnsupportedOS is returned by ConfigPath for platforms without a desktop app
var ErrUnsupportedOS = errors.New("unsupported operating system")

// ConfigPath returns the desktop config location for goos. home is the user's
// home directory and appData the value of %AppData% on windows.
func ConfigPath(goos, home, appData string) (string, error) {
	switch goos {
	case "darwin":
		if home == "" {
			return "", fmt.Errorf("home directory is not set")
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", ConfigFileName), nil
	case "windows":
		if appData == "" {
			return "", fmt.Errorf("AppData is not set")
		}
		return filepath.Join(appData, "Claude", ConfigFileName), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

// Apply sets mcpServers[serverName] in the desktop config at path to entry.
// Other keys in the file are preserved. A file that cannot be parsed is
// replaced by a fresh config.
func Apply(path, serverName string, entry config.ServerEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	doc := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
			logging.Warn("Desktop", "Ignoring unparseable desktop config %s: %v", path, err)
			doc = map[string]interface{}{}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	servers, ok := doc["mcpServers"].(map[string]interface{})
	if !ok {
		servers = map[string]interface{}{}
	}
	servers[serverName] = entry
	doc["mcpServers"] = servers

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode desktop config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Info("Desktop", "Registered %s in %s", serverName, path)
	return nil
}
