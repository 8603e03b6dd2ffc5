package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/cmd"
	"github.com/brandkit/internal/config"
	"github.com/brandkit/internal/logging"
)

const (
	version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:    "brandkit",
		Usage:   "Classify copy, generate branded assets and audit them for brand compliance",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
				Value:   "brandkit.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override general.log_level (trace, debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			level, format := "info", "console"
			if cfg, err := config.LoadConfig(c.String("config")); err == nil {
				level, format = cfg.General.LogLevel, cfg.General.LogFormat
			}
			if c.IsSet("log-level") {
				level = c.String("log-level")
			}
			return logging.Setup(level, format)
		},
		Commands: []*cli.Command{
			cmd.AnalyzeCommand(),
			cmd.GenerateCommand(),
			cmd.AuditCommand(),
			cmd.FeedbackCommand(),
			cmd.BrandCommand(),
			cmd.ConfigCommand(),
			cmd.ServeCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
