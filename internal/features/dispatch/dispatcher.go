package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ScriptError reports a delegated script that failed
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("error during %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Dispatcher resolves command names against a Table and delegates the
// mapped script to a Runner in the package root
type Dispatcher struct {
	Program string
	Table   Table
	// Locate resolves the package root
	Locate func() (string, error)
	// RunnerFor builds the runner used in root
	RunnerFor func(root string) (Runner, error)
	Stdout    io.Writer
}

// New returns a dispatcher for the default table that runs scripts through
// the given runner binary
func New(program, binary string) *Dispatcher {
	return &Dispatcher{
		Program: program,
		Table:   DefaultTable(),
		Locate:  LocateRoot,
		RunnerFor: func(string) (Runner, error) {
			return NewScriptRunner(binary), nil
		},
		Stdout: os.Stdout,
	}
}

// Dispatch runs the script mapped to name. Unknown or empty names print the
// usage summary and succeed.
func (d *Dispatcher) Dispatch(ctx context.Context, name string) error {
	out := d.Stdout
	if out == nil {
		out = os.Stdout
	}

	cmd, ok := d.Table.Lookup(name)
	if !ok {
		PrintUsage(out, d.Program, d.Table)
		return nil
	}

	root, err := d.Locate()
	if err != nil {
		return err
	}

	runner, err := d.RunnerFor(root)
	if err != nil {
		return &ScriptError{Script: cmd.Script, Err: err}
	}

	fmt.Fprintf(out, "📦 Running %s script...\n", cmd.Script)

	if err := runner.Run(ctx, root, cmd.Script); err != nil {
		return &ScriptError{Script: cmd.Script, Err: err}
	}

	fmt.Fprintf(out, "✅ %s completed successfully\n", cmd.Script)
	return nil
}
