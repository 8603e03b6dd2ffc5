package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/brand"
)

// BrandCommand returns the brand command
func BrandCommand() *cli.Command {
	return &cli.Command{
		Name:  "brand",
		Usage: "Inspect brand configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate a brand configuration file",
				Flags:  []cli.Flag{brandFlag},
				Action: runBrandValidate,
			},
		},
	}
}

func runBrandValidate(c *cli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		return err
	}
	path := brandPath(c, cfg)

	b, err := brand.Load(path)
	if err != nil {
		return err
	}
	res := b.Validate()
	for _, w := range res.Warnings {
		fmt.Fprintf(c.App.Writer, "warning: %s\n", w)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(c.App.Writer, "error: %s\n", e)
	}
	if !res.Valid() {
		return cli.Exit(fmt.Sprintf("%s: %d error(s)", path, len(res.Errors)), 1)
	}

	fmt.Fprintf(c.App.Writer, "%s is valid (%s)\n", path, b.Brand.Name)
	return nil
}
