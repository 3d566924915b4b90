package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigFileName is the user config file looked up in the working directory.
	DefaultConfigFileName = ".mcphub.json"

	// DefaultCacheDirName is the repository cache directory created under the user's home.
	DefaultCacheDirName = ".mcphub_cache"

	// ConfigPathEnvVar overrides the user config location.
	ConfigPathEnvVar = "MCPHUB_CONFIG"

	// CacheDirEnvVar overrides the repository cache location.
	CacheDirEnvVar = "MCPHUB_CACHE_DIR"

	// CatalogPathEnvVar points at a catalog file used instead of the embedded one.
	CatalogPathEnvVar = "MCPHUB_CATALOG"
)

// DefaultConfigPath returns the config path from MCPHUB_CONFIG, or
// .mcphub.json in the current working directory.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not determine working directory: %w", err)
	}
	return filepath.Join(wd, DefaultConfigFileName), nil
}

// DefaultCacheDir returns the cache root from MCPHUB_CACHE_DIR, or
// ~/.mcphub_cache.
func DefaultCacheDir() (string, error) {
	if p := os.Getenv(CacheDirEnvVar); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultCacheDirName), nil
}
