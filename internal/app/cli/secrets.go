package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"specgen/internal/features/secrets"
)

func secretsCommand() *cli.Command {
	return &cli.Command{
		Name:  "secrets",
		Usage: "Manage the encrypted production env file",
		Subcommands: []*cli.Command{
			{
				Name:      "seal",
				Usage:     "Encrypt a dotenv file into .env.age",
				ArgsUsage: "<file>",
				Description: `Encrypt a dotenv file with AGE_ENCRYPTION_PASSWORD so it can be committed
next to the application. The ecosystem command decrypts it when generating
the pm2 process file.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Value: secrets.FileName,
						Usage: "Encrypted output file",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing output file",
					},
				},
				Action: runSeal,
			},
		},
	}
}

func runSeal(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one dotenv file argument is required")
	}
	input := c.Args().Get(0)
	output := c.String("output")

	if !c.Bool("force") {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("file %s already exists, use --force to overwrite", output)
		}
	}

	plaintext, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	sealed, err := secrets.Seal(plaintext, os.Getenv(secrets.PasswordEnv))
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(c.App.Writer, "🔒 Sealed %s into %s\n", input, output)
	return nil
}
