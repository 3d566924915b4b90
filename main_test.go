package main

import (
	"testing"

	"mcphub/cmd"
)

func TestVersion(t *testing.T) {
	// Test default version
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}
}

func TestSetVersionFromMain(t *testing.T) {
	originalVersion := version
	defer func() {
		version = originalVersion
		cmd.SetVersion(originalVersion)
	}()

	version = "2.3.4-beta.1"
	cmd.SetVersion(version)

	if got := cmd.GetVersion(); got != version {
		t.Errorf("Expected version %s, got %s", version, got)
	}
}
