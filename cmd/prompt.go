package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// readlinePrompter asks for each template variable on the terminal.
type readlinePrompter struct{}

// PromptEnvVars reads one line per variable. Empty answers are skipped.
func (p *readlinePrompter) PromptEnvVars(vars []string) (map[string]string, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	values := make(map[string]string, len(vars))
	for _, v := range vars {
		rl.SetPrompt(fmt.Sprintf("Enter value for %s (leave empty to skip): ", v))
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return nil, fmt.Errorf("interrupted")
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if value := strings.TrimSpace(line); value != "" {
			values[v] = value
		}
	}
	return values, nil
}
