package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"specgen/internal/config"
	"specgen/internal/features/ecosystem"
	"specgen/internal/features/secrets"
)

func ecosystemCommand() *cli.Command {
	return &cli.Command{
		Name:  "ecosystem",
		Usage: "Generate the pm2 process file",
		Description: `Generate the pm2 process file for running the SpecGen server in production.

Values are layered in this order:
  1. built-in defaults (cwd from $PWD, placeholder OPENAI_API_KEY)
  2. [process] settings from specgen.toml
  3. variables from .env.age, decrypted with AGE_ENCRYPTION_PASSWORD
  4. OPENAI_API_KEY from the environment

Start the result with: pm2 start <file>`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Package root (defaults to the installed package, then the current directory)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: json or yaml (inferred from --output when not set)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
		},
		Action: runEcosystem,
	}
}

func runEcosystem(c *cli.Context) error {
	root := resolveRoot(c.String("root"))

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	values, err := secrets.Load(filepath.Join(root, secrets.FileName), os.Getenv(secrets.PasswordEnv))
	if err != nil {
		return err
	}

	file := ecosystem.Build(ecosystem.Options{
		Getenv:    os.Getenv,
		Overrides: cfg.Process,
		Secrets:   values,
	})

	output := c.String("output")
	format := c.String("format")
	if format == "" {
		format = formatFromPath(output)
	}

	if output == "" {
		return ecosystem.Render(c.App.Writer, file, format)
	}

	var buf bytes.Buffer
	if err := ecosystem.Render(&buf, file, format); err != nil {
		return err
	}

	// the file carries credentials
	if err := os.WriteFile(output, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(c.App.Writer, "✓ Wrote %s (%d app)\n", output, len(file.Apps))
	return nil
}

// resolveRoot returns dir when set, otherwise the installed package root,
// otherwise the current directory
func resolveRoot(dir string) string {
	if dir != "" {
		return dir
	}
	if root, err := locateRoot(); err == nil {
		return root
	}
	return "."
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ecosystem.FormatYAML
	default:
		return ecosystem.FormatJSON
	}
}
