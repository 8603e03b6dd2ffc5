package cmd

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/textanalyzer"
)

// AnalyzeCommand returns the analyze command
func AnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Classify text fragments into layout roles",
		ArgsUsage: "TEXT... (prefix with ROLE: to force a role, e.g. \"cta:Learn more\")",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("missing required argument: TEXT", 2)
			}
			inputs := make([]textanalyzer.TextInput, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				inputs = append(inputs, parseTextArg(arg))
			}
			return printJSON(c.App.Writer, textanalyzer.New().Analyze(inputs))
		},
	}
}

// parseTextArg splits an optional "role:" prefix from arg. Prefixes that
// are not roles stay part of the text.
func parseTextArg(arg string) textanalyzer.TextInput {
	if prefix, rest, ok := strings.Cut(arg, ":"); ok {
		if role, err := textanalyzer.ParseRole(strings.ToLower(strings.TrimSpace(prefix))); err == nil {
			return textanalyzer.TextInput{Text: strings.TrimSpace(rest), ExplicitRole: role}
		}
	}
	return textanalyzer.TextInput{Text: arg}
}
