package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/feedback"
)

// FeedbackCommand returns the feedback command
func FeedbackCommand() *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Record and summarise asset reviews",
		Subcommands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "Record a review of a generated asset",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "asset", Usage: "Asset identifier", Required: true},
					&cli.Float64Flag{Name: "rating", Usage: "Overall rating, 1 to 5", Required: true},
					&cli.StringFlag{Name: "outcome", Usage: "approved, revised or rejected", Required: true},
					&cli.StringFlag{Name: "reviewer", Usage: "Reviewer name"},
					&cli.StringSliceFlag{Name: "issue", Usage: "Issue as CATEGORY[/SEVERITY]:DESCRIPTION; repeat for more"},
					&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
				},
				Action: runFeedbackSubmit,
			},
			{
				Name:  "summary",
				Usage: "Summarise reviews over a rolling window",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "days", Usage: "Window size in days (defaults to feedback.window_days)"},
				},
				Action: runFeedbackSummary,
			},
		},
	}
}

func runFeedbackSubmit(c *cli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		return err
	}
	svc, closeFn, err := openFeedbackService(c, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	entry := feedback.Entry{
		AssetID:       c.String("asset"),
		Reviewer:      c.String("reviewer"),
		OverallRating: c.Float64("rating"),
		Outcome:       feedback.Outcome(strings.ToLower(c.String("outcome"))),
		Notes:         c.String("notes"),
	}
	for _, raw := range c.StringSlice("issue") {
		issue, err := parseIssue(raw)
		if err != nil {
			return err
		}
		entry.Issues = append(entry.Issues, issue)
	}

	saved, err := svc.Submit(c.Context, entry)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, saved)
}

func runFeedbackSummary(c *cli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		return err
	}
	svc, closeFn, err := openFeedbackService(c, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	days := c.Int("days")
	if days == 0 {
		days = cfg.Feedback.WindowDays
	}
	sum, err := svc.GetSummary(c.Context, days)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, sum)
}

// parseIssue reads CATEGORY[/SEVERITY]:DESCRIPTION.
func parseIssue(raw string) (feedback.Issue, error) {
	head, desc, ok := strings.Cut(raw, ":")
	if !ok || strings.TrimSpace(head) == "" || strings.TrimSpace(desc) == "" {
		return feedback.Issue{}, fmt.Errorf("issue %q must look like category:description", raw)
	}
	category, severity, _ := strings.Cut(head, "/")
	return feedback.Issue{
		Category:    strings.TrimSpace(category),
		Severity:    strings.TrimSpace(severity),
		Description: strings.TrimSpace(desc),
	}, nil
}
