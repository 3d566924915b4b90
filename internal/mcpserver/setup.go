package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mcphub/internal/api"
	"mcphub/internal/config"
	"mcphub/pkg/logging"
)

// SetupScriptName is the file a setup script is written to before it runs.
const SetupScriptName = "setup_temp.sh"

// execCommandContext allows mocking exec.CommandContext in tests
var execCommandContext = exec.CommandContext

// RepoName returns the cache directory name for a package or repository URL:
// the last path segment with any .git suffix removed.
func RepoName(name string) string {
	name = strings.TrimRight(strings.TrimSpace(name), "/")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

// SetupServer prepares a single record: the repository is cloned into the
// cache (reusing an existing checkout), the record's path is pointed at it,
// and the setup script runs in the record's working directory.
func (m *Manager) SetupServer(ctx context.Context, record config.ServerConfig) error {
	name, ok := m.params.NameForPackage(record.PackageName)
	if !ok {
		return api.NewServerConfigNotFoundError(record.PackageName)
	}

	cwd := record.Cwd

	if record.RepoURL != "" {
		repoName := record.PackageName
		if repoName == "" {
			repoName = record.RepoURL
		}
		dir, err := m.cloneRepository(ctx, record.RepoURL, repoName)
		if err != nil {
			m.setState(name, StateFailed, err)
			return err
		}
		if err := m.params.UpdateServerPath(name, dir); err != nil {
			m.setState(name, StateFailed, err)
			return err
		}
		cwd = dir
		m.setState(name, StateRepositoryCloned, nil)
	}

	if record.SetupScript != "" {
		if cwd == "" {
			cwd = m.params.ConfigDir()
		}
		if err := m.runSetupScript(ctx, cwd, record.SetupScript); err != nil {
			m.setState(name, StateFailed, err)
			return err
		}
		m.setState(name, StateSetupComplete, nil)
	}

	m.setState(name, StateReady, nil)
	logging.Info("MCPServerManager", "Server %s is ready", name)
	return nil
}

// cloneRepository clones url into the cache directory and returns the checkout
// path. An existing directory at that path is reused without any check of its
// contents.
func (m *Manager) cloneRepository(ctx context.Context, url, repoName string) (string, error) {
	dir := filepath.Join(m.cacheDir, RepoName(repoName))

	if _, err := os.Stat(dir); err == nil {
		logging.Debug("MCPServerManager", "Using cached repository at %s", dir)
		return dir, nil
	}

	args := []string{"clone", url, dir}
	command := "git " + strings.Join(args, " ")

	if err := os.MkdirAll(m.cacheDir, 0755); err != nil {
		return "", &api.SetupError{
			Operation: api.SetupOperationClone,
			Target:    url,
			Command:   command,
			Err:       fmt.Errorf("failed to create cache directory %s: %w", m.cacheDir, err),
		}
	}

	logging.Info("MCPServerManager", "Cloning %s into %s", url, dir)

	cmd := execCommandContext(ctx, "git", args...)
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &api.SetupError{
			Operation: api.SetupOperationClone,
			Target:    url,
			Command:   command,
			Stderr:    strings.TrimSpace(stderr.String()),
			Err:       err,
		}
	}
	return dir, nil
}

// runSetupScript writes script to dir/setup_temp.sh, runs it with dir as the
// working directory, and removes the file afterwards whatever the outcome.
func (m *Manager) runSetupScript(ctx context.Context, dir, script string) error {
	scriptPath := filepath.Join(dir, SetupScriptName)

	scriptError := func(err error) error {
		return &api.SetupError{
			Operation: api.SetupOperationScript,
			Target:    dir,
			Command:   scriptPath,
			Err:       err,
		}
	}

	content := "#!/bin/bash\n" + script + "\n"
	if err := os.WriteFile(scriptPath, []byte(content), 0755); err != nil {
		return scriptError(fmt.Errorf("failed to write setup script: %w", err))
	}
	defer func() {
		if rmErr := os.Remove(scriptPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("MCPServerManager", "Failed to remove setup script %s: %v", scriptPath, rmErr)
		}
	}()

	// WriteFile does not change the mode of an existing file
	if err := os.Chmod(scriptPath, 0755); err != nil {
		return scriptError(fmt.Errorf("failed to make setup script executable: %w", err))
	}

	logging.Info("MCPServerManager", "Running setup script in %s", dir)

	cmd := execCommandContext(ctx, scriptPath)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		return &api.SetupError{
			Operation: api.SetupOperationScript,
			Target:    dir,
			Command:   scriptPath,
			Stderr:    strings.TrimSpace(stderr.String()),
			Err:       runErr,
		}
	}
	return nil
}
