package audit

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/layers"
)

func compliantTree(w, h float64) *document.Node {
	root := document.NewContainer(document.KindFrame, "Banner",
		document.NewContainer(document.KindFrame, layers.NameBackground),
		document.NewContainer(document.KindFrame, layers.NameDecorative,
			document.NewShape(document.KindEllipse, layers.NameGlow),
		),
		document.NewContainer(document.KindFrame, layers.NameBranding,
			document.NewShape(document.KindRectangle, layers.NameLogo),
		),
		document.NewContainer(document.KindFrame, layers.NameContent,
			document.NewText(layers.NameHeadline, "Launch", "Poppins"),
			document.NewText(layers.NameBody, "Details.", ""),
		),
	)
	root.ID = "1:2"
	root.Width, root.Height = w, h
	return root
}

func checkByName(t *testing.T, res Result, name string) Check {
	t.Helper()
	for _, c := range res.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %s not found", name)
	return Check{}
}

func newTestEngine(opts ...Option) *Engine {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	opts = append([]Option{WithFonts([]string{"Poppins", "Inter"}), WithClock(func() time.Time { return fixed })}, opts...)
	return NewEngine(opts...)
}

func TestAuditCompliantTree(t *testing.T) {
	res := newTestEngine().Audit(compliantTree(1200, 628))

	assert.True(t, res.Passed)
	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "1:2", res.NodeID)
	assert.Equal(t, "Banner", res.NodeName)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), res.Timestamp)

	var got []string
	for _, c := range res.Checks {
		got = append(got, c.Name)
	}
	assert.Equal(t, []string{
		CheckColorCompliance, CheckTypography, CheckLogoPlacement, CheckLayerStructure,
		CheckSafeZones, CheckContrastRatio, CheckExportQuality,
	}, got)
}

func TestAuditSmallExportFails(t *testing.T) {
	res := newTestEngine().Audit(compliantTree(500, 150))

	assert.False(t, res.Passed)
	assert.Equal(t, 86, res.Score)
	c := checkByName(t, res, CheckExportQuality)
	assert.False(t, c.Passed)
	assert.Equal(t, SeverityError, c.Severity)
	assert.Empty(t, res.Warnings)
}

func TestAuditExportBoundary(t *testing.T) {
	res := newTestEngine().Audit(compliantTree(600, 200))
	assert.True(t, checkByName(t, res, CheckExportQuality).Passed)

	res = newTestEngine().Audit(compliantTree(1080, 199))
	assert.False(t, checkByName(t, res, CheckExportQuality).Passed)
}

func TestAuditMissingLogoIsWarning(t *testing.T) {
	root := compliantTree(1080, 1080)
	root.Children[2].Children = nil

	res := newTestEngine().Audit(root)
	assert.True(t, res.Passed)
	assert.Equal(t, 86, res.Score)
	assert.Equal(t, []string{"No logo layer found"}, res.Warnings)
}

func TestAuditTypography(t *testing.T) {
	root := compliantTree(1080, 1080)
	root.Children[3].Append(document.NewText(layers.NameCTA, "Buy", "Comic Sans"))

	res := newTestEngine().Audit(root)
	c := checkByName(t, res, CheckTypography)
	assert.False(t, c.Passed)
	assert.Contains(t, c.Message, "Comic Sans")
	assert.False(t, res.Passed)
}

func TestAuditTypographyDefaultFont(t *testing.T) {
	// without brand fonts only the default family is allowed; empty families resolve to it
	res := NewEngine().Audit(compliantTree(1080, 1080))
	c := checkByName(t, res, CheckTypography)
	assert.False(t, c.Passed)
	assert.Equal(t, "Non-brand fonts in use: Poppins", c.Message)
}

func TestAuditLayerStructure(t *testing.T) {
	t.Run("group root is an error", func(t *testing.T) {
		root := compliantTree(1080, 1080)
		root.Kind = document.KindGroup
		res := newTestEngine().Audit(root)
		c := checkByName(t, res, CheckLayerStructure)
		assert.False(t, c.Passed)
		assert.Equal(t, SeverityError, c.Severity)
		assert.False(t, res.Passed)
	})

	t.Run("missing branding is only a warning", func(t *testing.T) {
		root := compliantTree(1080, 1080)
		root.Children = append(root.Children[:2], root.Children[3])
		res := newTestEngine().Audit(root)
		c := checkByName(t, res, CheckLayerStructure)
		assert.True(t, c.Passed)
		assert.Equal(t, SeverityWarning, c.Severity)
		assert.Contains(t, c.Message, "branding")
	})
}

func TestAuditReplacedCheck(t *testing.T) {
	e := newTestEngine(WithChecker(CheckerFunc{
		CheckName: CheckContrastRatio,
		Fn: func(*document.Node) Check {
			return Check{Passed: false, Severity: SeverityWarning, Message: "low contrast"}
		},
	}), WithChecker(CheckerFunc{CheckName: "unknown", Fn: func(*document.Node) Check { return Check{} }}))

	assert.Len(t, e.CheckNames(), 7)
	res := e.Audit(compliantTree(1080, 1080))
	assert.True(t, res.Passed)
	assert.Equal(t, 86, res.Score)
	assert.Equal(t, []string{"low contrast"}, res.Warnings)
	assert.Equal(t, CheckContrastRatio, res.Checks[5].Name)
}

func TestAuditScoreMatchesPassedChecks(t *testing.T) {
	roots := []*document.Node{
		nil,
		document.NewContainer(document.KindGroup, "g"),
		compliantTree(10, 10),
		compliantTree(1080, 1080),
	}
	for _, r := range roots {
		res := newTestEngine().Audit(r)
		passed, errFailed := 0, false
		for _, c := range res.Checks {
			if c.Passed {
				passed++
			} else if c.Severity == SeverityError {
				errFailed = true
			}
		}
		assert.Equal(t, score(passed, 7), res.Score)
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, 100)
		assert.Equal(t, !errFailed, res.Passed)
	}
}

func TestAuditBatchKeepsOrder(t *testing.T) {
	roots := make([]*document.Node, 20)
	for i := range roots {
		roots[i] = compliantTree(1080, 1080)
		roots[i].ID = string(rune('a' + i))
	}
	results, err := newTestEngine(WithConcurrency(3)).AuditBatch(context.Background(), roots)
	require.NoError(t, err)
	require.Len(t, results, len(roots))
	for i, r := range results {
		assert.Equal(t, roots[i].ID, r.NodeID)
	}
}

func TestAuditBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestEngine().AuditBatch(ctx, []*document.Node{compliantTree(1080, 1080)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder("brandkit", reg)
	require.NoError(t, err)

	e := newTestEngine(WithRecorder(rec))
	e.Audit(compliantTree(1080, 1080))
	e.Audit(compliantTree(100, 100))

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.audits.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.audits.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.failedChecks.WithLabelValues(CheckExportQuality, "error")))

	_, err = NewPrometheusRecorder("brandkit", reg)
	assert.Error(t, err, "duplicate registration")
}
