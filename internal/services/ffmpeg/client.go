package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Invocation describes a single ffmpeg run. Stdout and stderr are captured
// to the given files so the analysis pass log can be parsed afterwards and
// failures can be inspected.
type Invocation struct {
	Args       []string
	StdoutPath string
	StderrPath string
}

// Runner executes ffmpeg invocations. The run blocks until the child
// process exits; a non-zero exit status is returned as an error.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line engine.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Run launches ffmpeg with the invocation's arguments. Standard input stays
// connected to the controlling terminal so overwrite confirmations reach the
// user instead of deadlocking the run.
func (c *CLI) Run(ctx context.Context, inv Invocation) error {
	if len(inv.Args) == 0 {
		return errors.New("ffmpeg run: no arguments")
	}

	stdout, err := os.Create(inv.StdoutPath)
	if err != nil {
		return fmt.Errorf("create stdout log: %w", err)
	}
	defer stdout.Close()

	stderr, err := os.Create(inv.StderrPath)
	if err != nil {
		return fmt.Errorf("create stderr log: %w", err)
	}
	defer stderr.Close()

	cmd := commandContext(ctx, c.binary, inv.Args...) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run ffmpeg: %w", err)
	}
	return nil
}

var _ Runner = (*CLI)(nil)

// FormatArgs renders an argument list for log output, escaping embedded
// spaces the way a shell user would type them.
func FormatArgs(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)
	for _, arg := range args {
		parts = append(parts, strings.ReplaceAll(arg, " ", `\ `))
	}
	return strings.Join(parts, " ")
}
