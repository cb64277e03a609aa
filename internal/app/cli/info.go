package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"specgen/internal/features/manifest"
)

// packageScripts are the shell scripts shipped with the application package
var packageScripts = []string{"setup", "dev", "production"}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:        "info",
		Usage:       "Show the installed package version and script locations",
		Description: `Show the name and version of the installed SpecGen package, its root directory and the scripts it ships.`,
		Action:      runInfo,
	}
}

func runInfo(c *cli.Context) error {
	root, err := locateRoot()
	if err != nil {
		return err
	}

	m, err := manifest.Read(filepath.Join(root, manifest.FileName))
	if err != nil {
		return err
	}

	name, ok := m.Name()
	if !ok {
		name = filepath.Base(root)
	}
	version, ok := m.String("version")
	if !ok {
		version = "unknown"
	}

	out := c.App.Writer
	fmt.Fprintf(out, "📦 %s %s\n", name, version)
	fmt.Fprintf(out, "📁 Root: %s\n", root)
	fmt.Fprintf(out, "📜 Scripts:\n")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, script := range packageScripts {
		path := filepath.Join(root, "scripts", script+".sh")
		mark := "✓"
		if _, err := os.Stat(path); err != nil {
			mark = "✗"
		}
		fmt.Fprintf(w, "   %s\t%s\t%s\n", mark, script, path)
	}
	return w.Flush()
}
