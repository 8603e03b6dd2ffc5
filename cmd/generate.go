package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/audit"
	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/generate"
	"github.com/brandkit/internal/textanalyzer"
	"github.com/brandkit/internal/theme"
)

// GenerateCommand returns the generate command
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a branded asset document",
		Flags: []cli.Flag{
			brandFlag,
			&cli.StringFlag{
				Name:     "asset",
				Aliases:  []string{"a"},
				Usage:    "Asset type (" + strings.Join(generate.AssetTypes(), ", ") + ")",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "Theme (" + strings.Join(theme.IDs(), ", ") + ")",
				Value:   generate.DefaultTheme,
			},
			&cli.StringSliceFlag{
				Name:  "text",
				Usage: "Text fragment; repeat for more, ROLE: prefix forces a role",
			},
			&cli.StringSliceFlag{
				Name:  "effect",
				Usage: "Effect to enable (glow, pattern)",
			},
			&cli.StringFlag{
				Name:  "logo-placement",
				Usage: "Logo placement (top-left, top-right, bottom-left, bottom-right, center)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the document to `FILE` instead of stdout",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		return err
	}
	brandCfg, err := loadBrandOrDefault(brandPath(c, cfg))
	if err != nil {
		return err
	}

	texts := c.StringSlice("text")
	if len(texts) == 0 {
		return cli.Exit("at least one --text is required", 2)
	}
	req := generate.Request{
		AssetType: c.String("asset"),
		Theme:     c.String("theme"),
		Options: generate.LayoutOptions{
			LogoPlacement: brand.LogoPlacement(c.String("logo-placement")),
			Effects:       c.StringSlice("effect"),
		},
	}
	for _, t := range texts {
		req.Texts = append(req.Texts, parseTextArg(t))
	}

	asset, err := generate.NewBuilder(brandCfg).Build(req)
	if err != nil {
		return err
	}

	data, err := document.Encode(asset.Root)
	if err != nil {
		return err
	}
	if out := c.String("output"); out != "" {
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
	} else if _, err := c.App.Writer.Write(append(data, '\n')); err != nil {
		return err
	}

	res := audit.NewEngine(audit.WithFonts(brandCfg.Fonts())).Audit(asset.Root)
	fmt.Fprintf(c.App.ErrWriter, "%s %s: %s, score %d\n", asset.AssetType, asset.ID, passLabel(res.Passed), res.Score)
	for _, r := range classifiedSummary(asset.Texts) {
		fmt.Fprintln(c.App.ErrWriter, "  "+r)
	}
	return nil
}

func classifiedSummary(texts []textanalyzer.ClassifiedText) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		out = append(out, fmt.Sprintf("%-8s %.2f  %s", t.Role, t.Confidence, t.Text))
	}
	return out
}

func passLabel(ok bool) string {
	if ok {
		return "passed"
	}
	return "failed"
}
