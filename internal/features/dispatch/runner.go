package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultRunnerBinary is the script runner used when none is configured
const DefaultRunnerBinary = "npm"

// Runner executes a named package script in dir
type Runner interface {
	Run(ctx context.Context, dir, script string) error
}

// ScriptRunner runs `<binary> run <script>` with the given standard streams
type ScriptRunner struct {
	Binary string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewScriptRunner returns a runner that inherits the process's standard streams
func NewScriptRunner(binary string) *ScriptRunner {
	if binary == "" {
		binary = DefaultRunnerBinary
	}
	return &ScriptRunner{
		Binary: binary,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run blocks until the script exits. A non-zero exit is returned as an error.
func (r *ScriptRunner) Run(ctx context.Context, dir, script string) error {
	cmd := exec.CommandContext(ctx, r.Binary, "run", script)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return fmt.Errorf("command failed: %s run %s (exit status %d)", r.Binary, script, ee.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", r.Binary, err)
	}
	return nil
}
