package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"specgen/internal/features/dispatch"
)

const programName = "specgen"

// Overridden in tests.
var (
	locateRoot = dispatch.LocateRoot
	newRunner  = func(binary string, stdout, stderr io.Writer) dispatch.Runner {
		r := dispatch.NewScriptRunner(binary)
		r.Stdout = stdout
		r.Stderr = stderr
		return r
	}
)

func newApp(stdout, stderr io.Writer) *cli.App {
	commands := scriptCommands()
	commands = append(commands,
		syncVersionsCommand(),
		ecosystemCommand(),
		secretsCommand(),
		infoCommand(),
	)

	return &cli.App{
		Name:  programName,
		Usage: "Set up, run and deploy the SpecGen application",
		Description: `specgen delegates each command to the matching package script of the
installed SpecGen application, so it works the same whether it runs from a
checkout or from node_modules.

It also keeps component versions in step with the main package.json and
generates the process-manager file used in production.`,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands:  commands,
		// `help <topic>` falls through to the Action, which prints usage
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			return newDispatcher(c).Dispatch(c.Context, c.Args().First())
		},
		// unrecognized flags are treated like unknown commands
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			dispatch.PrintUsage(c.App.Writer, programName, dispatch.DefaultTable())
			return nil
		},
		// errors are reported by Run, which owns the exit status
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// Run executes the CLI and returns the process exit status
func Run(args []string, stdout, stderr io.Writer) int {
	if err := newApp(stdout, stderr).Run(args); err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 1
	}
	return 0
}

// Execute runs the CLI application
func Execute() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}
