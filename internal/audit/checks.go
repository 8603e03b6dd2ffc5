package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/layers"
)

// Minimum export dimensions in pixels.
const (
	MinExportWidth  = 600
	MinExportHeight = 200
)

// Check names, in the order the engine runs them.
const (
	CheckColorCompliance = "color-compliance"
	CheckTypography      = "typography"
	CheckLogoPlacement   = "logo-placement"
	CheckLayerStructure  = "layer-structure"
	CheckSafeZones       = "safe-zones"
	CheckContrastRatio   = "contrast-ratio"
	CheckExportQuality   = "export-quality"
)

// Checker evaluates one compliance rule against a document.
type Checker interface {
	Name() string
	Run(root *document.Node) Check
}

// CheckerFunc adapts a function into a Checker.
type CheckerFunc struct {
	CheckName string
	Fn        func(root *document.Node) Check
}

func (c CheckerFunc) Name() string { return c.CheckName }
func (c CheckerFunc) Run(root *document.Node) Check { return c.Fn(root) }

// placeholder always passes. Real colorimetric checks can replace it
// through WithChecker without touching aggregation.
type placeholder struct {
	name     string
	severity Severity
	message  string
}

func (p placeholder) Name() string { return p.name }

func (p placeholder) Run(*document.Node) Check {
	return Check{Name: p.name, Passed: true, Message: p.message, Severity: p.severity}
}

type typographyCheck struct {
	allowed map[string]bool
	list    []string
}

func newTypographyCheck(fonts []string) typographyCheck {
	if len(fonts) == 0 {
		fonts = []string{brand.DefaultFontFamily}
	}
	allowed := make(map[string]bool, len(fonts))
	for _, f := range fonts {
		allowed[f] = true
	}
	return typographyCheck{allowed: allowed, list: fonts}
}

func (typographyCheck) Name() string { return CheckTypography }

func (c typographyCheck) Run(root *document.Node) Check {
	offending := map[string]bool{}
	for _, n := range layers.GetTextLayers(root) {
		family := n.FontFamily
		if family == "" {
			family = brand.DefaultFontFamily
		}
		if !c.allowed[family] {
			offending[family] = true
		}
	}
	if len(offending) == 0 {
		return Check{Name: CheckTypography, Passed: true, Severity: SeverityError,
			Message: "All text uses brand fonts (" + strings.Join(c.list, ", ") + ")"}
	}
	fonts := make([]string, 0, len(offending))
	for f := range offending {
		fonts = append(fonts, f)
	}
	sort.Strings(fonts)
	return Check{Name: CheckTypography, Passed: false, Severity: SeverityError,
		Message: "Non-brand fonts in use: " + strings.Join(fonts, ", ")}
}

type logoCheck struct{}

func (logoCheck) Name() string { return CheckLogoPlacement }

func (logoCheck) Run(root *document.Node) Check {
	if layers.FindLayer(root, layers.NameLogo) == nil {
		return Check{Name: CheckLogoPlacement, Passed: false, Severity: SeverityWarning,
			Message: "No logo layer found"}
	}
	return Check{Name: CheckLogoPlacement, Passed: true, Severity: SeverityWarning,
		Message: "Logo present"}
}

type layerStructureCheck struct {
	manager *layers.Manager
}

func (layerStructureCheck) Name() string { return CheckLayerStructure }

func (c layerStructureCheck) Run(root *document.Node) Check {
	res := c.manager.Validate(root)
	severity := SeverityWarning
	if len(res.Errors) > 0 {
		severity = SeverityError
	}
	problems := append(append([]string{}, res.Errors...), res.Warnings...)
	if len(problems) == 0 {
		return Check{Name: CheckLayerStructure, Passed: true, Severity: severity,
			Message: "Layer structure is valid"}
	}
	return Check{Name: CheckLayerStructure, Passed: res.Valid, Severity: severity,
		Message: strings.Join(problems, "; ")}
}

type exportQualityCheck struct{}

func (exportQualityCheck) Name() string { return CheckExportQuality }

func (exportQualityCheck) Run(root *document.Node) Check {
	var w, h float64
	if root != nil {
		w, h = root.Width, root.Height
	}
	if w < MinExportWidth || h < MinExportHeight {
		return Check{Name: CheckExportQuality, Passed: false, Severity: SeverityError,
			Message: fmt.Sprintf("Dimensions %.0fx%.0f are below the %dx%d minimum", w, h, MinExportWidth, MinExportHeight)}
	}
	return Check{Name: CheckExportQuality, Passed: true, Severity: SeverityError,
		Message: fmt.Sprintf("Dimensions %.0fx%.0f meet export requirements", w, h)}
}

func defaultCheckers(fonts []string, manager *layers.Manager) []Checker {
	return []Checker{
		placeholder{name: CheckColorCompliance, severity: SeverityError, message: "Colors are drawn from the brand palette"},
		newTypographyCheck(fonts),
		logoCheck{},
		layerStructureCheck{manager: manager},
		placeholder{name: CheckSafeZones, severity: SeverityWarning, message: "Content sits within safe zones"},
		placeholder{name: CheckContrastRatio, severity: SeverityWarning, message: "Text contrast meets WCAG AA"},
		exportQualityCheck{},
	}
}
