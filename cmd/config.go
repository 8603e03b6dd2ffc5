package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a sample configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output `FILE`",
						Value:   "brandkit.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:  "validate",
				Usage: "Check the configuration and the brand file it points at",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "print", Usage: "Print the effective configuration as JSON"},
				},
				Action: runConfigValidate,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	out := c.String("output")
	if err := config.InitConfig(out); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "Created configuration file at %s\n", out)
	return nil
}

func runConfigValidate(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := config.Validate(cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if _, err := os.Stat(cfg.Brand.Path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(c.App.Writer, "warning: brand file %s not found, built-in defaults apply\n", cfg.Brand.Path)
	}

	if c.Bool("print") {
		shown := *cfg
		shown.Feedback.DSN = redactDSN(cfg.Feedback.DSN)
		return printJSON(c.App.Writer, shown)
	}
	fmt.Fprintln(c.App.Writer, "Configuration is valid")
	return nil
}

// redactDSN hides the password of a URL-style connection string. Key/value
// DSNs cannot be parsed reliably and are hidden entirely.
func redactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "[redacted]"
	}
	return u.Redacted()
}
