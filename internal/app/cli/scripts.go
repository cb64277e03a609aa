package cli

import (
	"github.com/urfave/cli/v2"

	"specgen/internal/config"
	"specgen/internal/features/dispatch"
)

// scriptCommands exposes every dispatch table entry as a command so that
// `specgen help <command>` works for them too
func scriptCommands() []*cli.Command {
	table := dispatch.DefaultTable()
	commands := make([]*cli.Command, 0, len(table))
	for _, entry := range table {
		entry := entry
		commands = append(commands, &cli.Command{
			Name:        entry.Name,
			Usage:       entry.Description,
			Description: "Runs the \"" + entry.Script + "\" package script from the application root.",
			// arguments after the command name are ignored
			SkipFlagParsing: true,
			Action: func(c *cli.Context) error {
				return newDispatcher(c).Dispatch(c.Context, entry.Name)
			},
		})
	}
	return commands
}

func newDispatcher(c *cli.Context) *dispatch.Dispatcher {
	return &dispatch.Dispatcher{
		Program: programName,
		Table:   dispatch.DefaultTable(),
		Locate:  locateRoot,
		RunnerFor: func(root string) (dispatch.Runner, error) {
			cfg, err := config.Load(root)
			if err != nil {
				return nil, err
			}
			return newRunner(cfg.Runner.Binary, c.App.Writer, c.App.ErrWriter), nil
		},
		Stdout: c.App.Writer,
	}
}
