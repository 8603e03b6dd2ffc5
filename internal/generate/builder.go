// Package generate builds document trees for branded assets from classified
// text and layout options.
package generate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/layers"
	"github.com/brandkit/internal/textanalyzer"
	"github.com/brandkit/internal/theme"
)

// ErrUnknownAssetType is returned for asset types missing from Sizes.
var ErrUnknownAssetType = errors.New("unknown asset type")

// DefaultTheme is applied when a request names none.
const DefaultTheme = "dark"

// Effects a request may enable.
const (
	EffectGlow    = "glow"
	EffectPattern = "pattern"
)

// LayoutOptions tunes the layout of a generated asset.
type LayoutOptions struct {
	LogoPlacement brand.LogoPlacement `json:"logoPlacement,omitempty"`
	Effects       []string            `json:"effects,omitempty"`
}

// Request describes an asset to generate.
type Request struct {
	AssetType string                   `json:"assetType" validate:"required"`
	Texts     []textanalyzer.TextInput `json:"texts" validate:"required,min=1,dive"`
	Theme     string                   `json:"theme,omitempty"`
	Options   LayoutOptions            `json:"options"`
}

// Asset is a generated document with the classification that shaped it.
type Asset struct {
	ID        string                        `json:"id"`
	AssetType string                        `json:"assetType"`
	Theme     string                        `json:"theme"`
	Texts     []textanalyzer.ClassifiedText `json:"texts"`
	Root      *document.Node                `json:"document"`
}

// Builder turns requests into named, themed document trees.
type Builder struct {
	analyzer *textanalyzer.Analyzer
	layers   *layers.Manager
	brand    *brand.Config
}

// NewBuilder returns a Builder for the given brand. A nil brand uses the
// default palette and font.
func NewBuilder(cfg *brand.Config) *Builder {
	return &Builder{analyzer: textanalyzer.New(), layers: layers.NewManager(), brand: cfg}
}

// textStyle is the builder's naming and sizing for one text role.
type textStyle struct {
	name  string
	scale float64
	font  func(*brand.Config) string
}

var textStyles = map[textanalyzer.Role]textStyle{
	textanalyzer.RoleTag:      {name: "Tag Label", scale: 0.022, font: (*brand.Config).BodyFont},
	textanalyzer.RoleHeadline: {name: "Headline Text", scale: 0.07, font: (*brand.Config).HeadlineFont},
	textanalyzer.RoleSubhead:  {name: "Subhead Text", scale: 0.04, font: (*brand.Config).HeadlineFont},
	textanalyzer.RoleBody:     {name: "Body Copy", scale: 0.028, font: (*brand.Config).BodyFont},
	textanalyzer.RoleCTA:      {name: "CTA Button", scale: 0.032, font: (*brand.Config).BodyFont},
}

// Build classifies the request's texts, lays out a tree, normalises its
// layer names and applies the theme.
func (b *Builder) Build(req Request) (*Asset, error) {
	size, ok := SizeOf(req.AssetType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssetType, req.AssetType)
	}
	themeID := req.Theme
	if themeID == "" {
		themeID = DefaultTheme
	}

	classified := b.analyzer.Analyze(req.Texts)
	ids := newIDSource()

	root := document.NewContainer(document.KindFrame, titleCase(req.AssetType))
	root.ID = ids.root
	root.Width, root.Height = size.Width, size.Height

	bg := ids.assign(document.NewContainer(document.KindFrame, "BG Layer"))
	bg.Width, bg.Height = size.Width, size.Height

	// builder order is content first; ApplyNaming puts it back in canonical order
	root.Append(
		b.content(classified, size, ids),
		b.branding(req.Options, size, ids),
		decoration(req.Options, size, ids),
		bg,
	)

	b.layers.ApplyNaming(root)
	theme.NewEngine(b.brand.Palette()).Apply(root, themeID)

	log.Debug().
		Str("asset_type", req.AssetType).
		Str("theme", themeID).
		Int("texts", len(classified)).
		Msg("asset generated")

	return &Asset{ID: root.ID, AssetType: req.AssetType, Theme: themeID, Texts: classified, Root: root}, nil
}

func (b *Builder) content(texts []textanalyzer.ClassifiedText, size Size, ids *idSource) *document.Node {
	margin := math.Round(size.Width * 0.08)
	width := size.Width - 2*margin
	frame := ids.assign(document.NewContainer(document.KindFrame, "Text Content"))
	frame.X, frame.Y, frame.Width = margin, margin, width

	y := 0.0
	base := math.Min(size.Width, size.Height)
	for _, t := range texts {
		style := textStyles[t.Role]
		node := ids.assign(document.NewText(style.name, t.Text, style.font(b.brand)))
		node.FontSize = math.Max(12, math.Round(base*style.scale))
		node.Width = width
		node.Height = estimateHeight(t.CharCount, node.FontSize, width)
		node.Y = y
		y += node.Height + node.FontSize*0.5
		frame.Append(node)
	}
	frame.Height = y
	return frame
}

func (b *Builder) branding(opts LayoutOptions, size Size, ids *idSource) *document.Node {
	frame := ids.assign(document.NewContainer(document.KindFrame, "Brand Block"))
	frame.Width, frame.Height = size.Width, size.Height
	if b.brand != nil && b.brand.Logo != nil {
		logo := ids.assign(document.NewShape(document.KindRectangle, "Logo Mark"))
		side := math.Round(math.Min(size.Width, size.Height) * 0.12)
		logo.Width, logo.Height = side, side
		logo.X, logo.Y = placeLogo(b.placement(opts), size, side)
		frame.Append(logo)
	}
	if b.brand != nil && b.brand.Brand.Tagline != "" {
		tagline := ids.assign(document.NewText("Slogan", b.brand.Brand.Tagline, b.brand.BodyFont()))
		tagline.FontSize = math.Max(12, math.Round(math.Min(size.Width, size.Height)*0.022))
		frame.Append(tagline)
	}
	return frame
}

func (b *Builder) placement(opts LayoutOptions) brand.LogoPlacement {
	if opts.LogoPlacement.Valid() {
		return opts.LogoPlacement
	}
	if b.brand != nil && b.brand.Logo != nil && len(b.brand.Logo.Placements) > 0 {
		return b.brand.Logo.Placements[0]
	}
	return brand.PlacementBottomRight
}

func decoration(opts LayoutOptions, size Size, ids *idSource) *document.Node {
	frame := ids.assign(document.NewContainer(document.KindFrame, "Decor Elements"))
	frame.Width, frame.Height = size.Width, size.Height

	// the theme decides whether an existing glow is shown
	if hasEffect(opts, EffectGlow) {
		glow := ids.assign(document.NewShape(document.KindEllipse, "Glow Blur"))
		glow.Width, glow.Height = size.Width*0.6, size.Width*0.6
		glow.X, glow.Y = size.Width*0.5, -size.Height*0.2
		frame.Append(glow)
	}

	accent := ids.assign(document.NewShape(document.KindRectangle, "Accent Shape"))
	accent.Width, accent.Height = size.Width*0.15, math.Max(4, size.Height*0.01)
	frame.Append(accent)

	if hasEffect(opts, EffectPattern) {
		pattern := ids.assign(document.NewShape(document.KindRectangle, "Pattern Texture"))
		pattern.Width, pattern.Height = size.Width, size.Height
		frame.Append(pattern)
	}
	return frame
}

func placeLogo(p brand.LogoPlacement, size Size, side float64) (x, y float64) {
	m := math.Round(math.Min(size.Width, size.Height) * 0.06)
	switch p {
	case brand.PlacementTopLeft:
		return m, m
	case brand.PlacementTopRight:
		return size.Width - m - side, m
	case brand.PlacementBottomLeft:
		return m, size.Height - m - side
	case brand.PlacementCenter:
		return (size.Width - side) / 2, (size.Height - side) / 2
	default:
		return size.Width - m - side, size.Height - m - side
	}
}

// estimateHeight approximates wrapped text height from an average glyph
// width; real font metrics are out of reach here.
func estimateHeight(chars int, fontSize, width float64) float64 {
	if chars == 0 || width <= 0 {
		return fontSize * 1.2
	}
	lines := math.Ceil(float64(chars) * fontSize * 0.55 / width)
	return lines * fontSize * 1.2
}

func hasEffect(opts LayoutOptions, name string) bool {
	for _, e := range opts.Effects {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

type idSource struct {
	root string
	next int
}

func newIDSource() *idSource { return &idSource{root: uuid.NewString()} }

func (s *idSource) assign(n *document.Node) *document.Node {
	s.next++
	n.ID = fmt.Sprintf("%s:%d", s.root, s.next)
	return n
}
