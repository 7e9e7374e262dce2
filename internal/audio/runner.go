package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its stdout. Calls block
// until the command exits; cancellation comes from the context.
// Implementations can be the real exec-based runner or a fake for tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return stdout.Bytes(), nil
}

// Tool names of the two required control surfaces: pactl for devices and
// modules, pw-link for port links.
const (
	pactlTool  = "pactl"
	pwLinkTool = "pw-link"
)

// Tools checks that both control tools are installed.
type Tools struct{}

// Check implements pair.ToolChecker. It returns an error naming the first
// missing tool.
func (Tools) Check() error {
	for _, tool := range []string{pactlTool, pwLinkTool} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s: %w", tool, err)
		}
	}
	return nil
}
