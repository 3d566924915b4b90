package cmd

import (
	"bytes"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	SetVersion("0.4.2")

	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	expected := "mcphub version 0.4.2\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
