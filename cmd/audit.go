package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/audit"
	"github.com/brandkit/internal/document"
)

// AuditCommand returns the audit command
func AuditCommand() *cli.Command {
	return &cli.Command{
		Name:      "audit",
		Usage:     "Audit document trees for brand compliance",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			brandFlag,
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print full results as JSON",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit non-zero when any document fails",
			},
		},
		Action: runAudit,
	}
}

func runAudit(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("missing required argument: FILE", 2)
	}
	cfg, err := loadAppConfig(c)
	if err != nil {
		return err
	}
	brandCfg, err := loadBrandOrDefault(brandPath(c, cfg))
	if err != nil {
		return err
	}

	files := c.Args().Slice()
	roots := make([]*document.Node, 0, len(files))
	for _, f := range files {
		root, err := document.ReadFile(f)
		if err != nil {
			return err
		}
		roots = append(roots, root)
	}

	engine := audit.NewEngine(
		audit.WithFonts(brandCfg.Fonts()),
		audit.WithConcurrency(cfg.Audit.Concurrency),
	)
	results, err := engine.AuditBatch(c.Context, roots)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		if err := printJSON(c.App.Writer, results); err != nil {
			return err
		}
	} else {
		for i, res := range results {
			fmt.Fprintf(c.App.Writer, "%s: %s (score %d)\n", files[i], passLabel(res.Passed), res.Score)
			for _, ch := range res.Checks {
				mark := "ok  "
				if !ch.Passed {
					mark = "FAIL"
				}
				fmt.Fprintf(c.App.Writer, "  [%s] %-16s %-7s %s\n", mark, ch.Name, ch.Severity, ch.Message)
			}
		}
	}

	if c.Bool("strict") {
		for _, res := range results {
			if !res.Passed {
				return cli.Exit("one or more documents failed the audit", 1)
			}
		}
	}
	return nil
}
