package cli

import (
	"github.com/urfave/cli/v2"

	"specgen/internal/config"
	"specgen/internal/features/versionsync"
)

func syncVersionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync-versions",
		Usage: "Copy component versions from the main package.json",
		Description: `Copy the version declared for each component in the main package.json
dependencies into that component's own package.json.

Components:
  server - server/package.json  (@gv-sh/specgen-server)
  admin  - admin/package.json   (@gv-sh/specgen-admin)
  user   - user/package.json    (@gv-sh/specgen-user)

The component list can be replaced with [[components]] entries in specgen.toml.
Missing component manifests are reported and skipped.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Value: ".",
				Usage: "Directory containing the main package.json",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Report differences without writing, failing if any component is out of sync",
			},
		},
		Action: runSyncVersions,
	}
}

func runSyncVersions(c *cli.Context) error {
	root := c.String("root")

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	opts := versionsync.Options{
		Root:       root,
		Components: cfg.Components,
		Check:      c.Bool("check"),
		Out:        c.App.Writer,
	}

	_, err = versionsync.Sync(opts)
	return err
}
