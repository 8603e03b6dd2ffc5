package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/audit"
	"github.com/brandkit/internal/feedback"
	"github.com/brandkit/internal/textanalyzer"
)

const brandYAML = `
brand:
  name: Northwind
colors:
  primary: "#3366FF"
  secondary: "#8B5CF6"
  accent: "#F59E0B"
  background_light: "#FFFFFF"
  background_dark: "#101010"
  text_light: "#FAFAFA"
  text_dark: "#111111"
typography:
  headline_font: Poppins
  body_font: Inter
logo:
  primary: logo.svg
`

// testEnv writes a config and brand file into a temp dir and returns a
// runner for the CLI with output captured.
func testEnv(t *testing.T) (dir string, run func(args ...string) (string, error)) {
	t.Helper()
	dir = t.TempDir()
	brandPath := filepath.Join(dir, "brand.yaml")
	require.NoError(t, os.WriteFile(brandPath, []byte(brandYAML), 0644))
	cfgPath := filepath.Join(dir, "brandkit.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[brand]
path = "`+filepath.ToSlash(brandPath)+`"

[feedback]
store = "file"
path = "`+filepath.ToSlash(filepath.Join(dir, "feedback.json"))+`"
`), 0644))

	return dir, func(args ...string) (string, error) {
		var out bytes.Buffer
		app := &cli.App{
			Name:      "brandkit",
			Writer:    &out,
			ErrWriter: &bytes.Buffer{},
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "config", Value: cfgPath},
			},
			Commands: []*cli.Command{
				AnalyzeCommand(), GenerateCommand(), AuditCommand(),
				FeedbackCommand(), BrandCommand(), ConfigCommand(),
			},
			ExitErrHandler: func(*cli.Context, error) {},
		}
		err := app.Run(append([]string{"brandkit"}, args...))
		return out.String(), err
	}
}

func TestParseTextArg(t *testing.T) {
	assert.Equal(t, textanalyzer.TextInput{Text: "Learn more", ExplicitRole: textanalyzer.RoleCTA}, parseTextArg("CTA: Learn more"))
	assert.Equal(t, textanalyzer.TextInput{Text: "Note: this is text"}, parseTextArg("Note: this is text"))
	assert.Equal(t, textanalyzer.TextInput{Text: "plain"}, parseTextArg("plain"))
}

func TestParseIssue(t *testing.T) {
	is, err := parseIssue("color/major: low contrast")
	require.NoError(t, err)
	assert.Equal(t, feedback.Issue{Category: "color", Severity: "major", Description: "low contrast"}, is)

	is, err = parseIssue("copy:typo")
	require.NoError(t, err)
	assert.Equal(t, "", is.Severity)

	_, err = parseIssue("no separator")
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	_, run := testEnv(t)
	out, err := run("analyze", "Launch Day Is Here", "body:Short")
	require.NoError(t, err)

	var got []textanalyzer.ClassifiedText
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, textanalyzer.RoleHeadline, got[0].Role)
	assert.Equal(t, textanalyzer.RoleBody, got[1].Role)
	assert.Equal(t, 1.0, got[1].Confidence)
}

func TestGenerateThenAudit(t *testing.T) {
	dir, run := testEnv(t)
	docPath := filepath.Join(dir, "banner.json")

	_, err := run("generate", "--asset", "banner", "--theme", "bold",
		"--text", "Launch Day Is Here", "--text", "Get Started Today", "--output", docPath)
	require.NoError(t, err)

	out, err := run("audit", "--json", "--strict", docPath)
	require.NoError(t, err)
	var results []audit.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	assert.Equal(t, 100, results[0].Score)
}

func TestAuditStrictFails(t *testing.T) {
	dir, run := testEnv(t)
	docPath := filepath.Join(dir, "tiny.json")
	require.NoError(t, os.WriteFile(docPath, []byte(`{"type":"FRAME","name":"tiny","width":10,"height":10}`), 0644))

	out, err := run("audit", "--strict", docPath)
	assert.Error(t, err)
	assert.Contains(t, out, "FAIL")
}

func TestFeedbackCommands(t *testing.T) {
	_, run := testEnv(t)

	_, err := run("feedback", "submit", "--asset", "a1", "--rating", "4", "--outcome", "Approved",
		"--issue", "copy/minor:typo")
	require.NoError(t, err)
	_, err = run("feedback", "submit", "--asset", "a2", "--rating", "9", "--outcome", "approved")
	assert.ErrorIs(t, err, feedback.ErrInvalidEntry)

	out, err := run("feedback", "summary")
	require.NoError(t, err)
	var sum feedback.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.TotalEntries)
	assert.Equal(t, []string{"copy: typo"}, sum.CommonIssues)
	assert.Equal(t, 30, sum.WindowDays)
}

func TestBrandValidate(t *testing.T) {
	dir, run := testEnv(t)
	out, err := run("brand", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (Northwind)")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("brand:\n  name: X\n"), 0644))
	out, err = run("brand", "validate", "--brand", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "error: typography is required")
}

func TestConfigInitAndValidate(t *testing.T) {
	dir, run := testEnv(t)
	path := filepath.Join(dir, "new.toml")
	out, err := run("config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created configuration file")

	out, err = run("--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	_, err = run("config", "init", "--output", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestConfigValidatePrintsEffectiveConfig(t *testing.T) {
	dir, run := testEnv(t)
	path := filepath.Join(dir, "pg.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[brand]
path = "`+filepath.ToSlash(filepath.Join(dir, "brand.yaml"))+`"

[feedback]
store = "postgres"
dsn = "postgres://brandkit:hunter2@db:5432/brandkit"
`), 0644))

	out, err := run("--config", path, "config", "validate", "--print")
	require.NoError(t, err)
	assert.NotContains(t, out, "hunter2")

	var got map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "postgres", got["feedback"]["store"])
	assert.Equal(t, "postgres://brandkit:xxxxx@db:5432/brandkit", got["feedback"]["dsn"])
	assert.Equal(t, float64(8080), got["server"]["port"])
}

func TestConfigValidateRejectsBadConfig(t *testing.T) {
	dir, run := testEnv(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[feedback]\nstore = \"redis\"\n"), 0644))

	out, err := run("--config", path, "config", "validate")
	assert.ErrorContains(t, err, "unknown feedback store")
	assert.NotContains(t, out, "Configuration is valid")
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "", redactDSN(""))
	assert.Equal(t, "[redacted]", redactDSN("host=db user=bk password=secret"))
	assert.Equal(t, "postgres://bk@db/brandkit", redactDSN("postgres://bk@db/brandkit"))
}
