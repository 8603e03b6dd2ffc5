// Package theme resolves named themes against a brand palette and paints
// the canonically named layers of a document.
package theme

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/layers"
)

// GradientBackground is the background key that requests a primary to
// secondary linear gradient instead of a solid colour.
const GradientBackground = "gradient"

// Definition is a named bundle of colour roles and a glow flag.
type Definition struct {
	ID                 string `json:"id"`
	BackgroundColorKey string `json:"backgroundColorKey"`
	TextColorKey       string `json:"textColorKey"`
	AccentColorKey     string `json:"accentColorKey"`
	UseGlow            bool   `json:"useGlow"`
}

var registry = map[string]Definition{
	"dark": {
		ID: "dark", BackgroundColorKey: brand.ColorBackgroundDark,
		TextColorKey: brand.ColorTextLight, AccentColorKey: brand.ColorAccent, UseGlow: true,
	},
	"light": {
		ID: "light", BackgroundColorKey: brand.ColorBackgroundLight,
		TextColorKey: brand.ColorTextDark, AccentColorKey: brand.ColorPrimary, UseGlow: false,
	},
	"bold": {
		ID: "bold", BackgroundColorKey: brand.ColorPrimary,
		TextColorKey: brand.ColorTextLight, AccentColorKey: brand.ColorAccent, UseGlow: true,
	},
	"minimal": {
		ID: "minimal", BackgroundColorKey: brand.ColorBackgroundLight,
		TextColorKey: brand.ColorTextDark, AccentColorKey: brand.ColorTextDark, UseGlow: false,
	},
	"gradient": {
		ID: "gradient", BackgroundColorKey: GradientBackground,
		TextColorKey: brand.ColorTextLight, AccentColorKey: brand.ColorAccent, UseGlow: true,
	},
}

// Lookup returns the built-in theme with the given id.
func Lookup(id string) (Definition, bool) {
	d, ok := registry[id]
	return d, ok
}

// IDs returns the built-in theme ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Engine applies themes using a brand palette. A nil or partial palette
// falls back to brand.DefaultPalette key by key.
type Engine struct {
	palette brand.Palette
}

// NewEngine returns an Engine for palette.
func NewEngine(palette brand.Palette) *Engine {
	return &Engine{palette: palette}
}

// Resolve returns the colour for a palette key.
func (e *Engine) Resolve(key string) document.RGB {
	return e.palette.Resolve(key)
}

// Apply paints root with the theme themeID. Unknown ids leave the tree
// untouched. Missing layers are skipped.
func (e *Engine) Apply(root *document.Node, themeID string) {
	def, ok := Lookup(themeID)
	if !ok {
		log.Debug().Str("theme", themeID).Msg("unknown theme; nothing applied")
		return
	}
	if root == nil {
		return
	}
	e.applyBackground(root, def)
	e.applyTextColors(root, def)
	e.applyAccent(root, def)
	applyGlow(root, def)
	log.Debug().Str("theme", def.ID).Str("root", root.Name).Msg("theme applied")
}

func (e *Engine) applyBackground(root *document.Node, def Definition) {
	target := layers.FindLayer(root, layers.NameBackground)
	if target == nil {
		target = root
	}
	if def.BackgroundColorKey == GradientBackground {
		target.SetFills(document.LinearGradient(e.Resolve(brand.ColorPrimary), e.Resolve(brand.ColorSecondary)))
		return
	}
	target.SetFills(document.Solid(e.Resolve(def.BackgroundColorKey)))
}

func (e *Engine) applyTextColors(root *document.Node, def Definition) {
	color := e.Resolve(def.TextColorKey)
	for _, n := range layers.GetTextLayers(root) {
		if n.Name == layers.NameCTA {
			continue
		}
		n.SetFills(document.Solid(color))
	}
}

func (e *Engine) applyAccent(root *document.Node, def Definition) {
	cta := layers.FindLayer(root, layers.NameCTA)
	if cta == nil || !cta.IsText() {
		return
	}
	cta.SetFills(document.Solid(e.Resolve(def.AccentColorKey)))
}

func applyGlow(root *document.Node, def Definition) {
	decor := layers.FindLayer(root, layers.NameDecorative)
	if decor == nil || !decor.IsContainer() {
		return
	}
	glow := layers.FindLayer(decor, layers.NameGlow)
	if glow == nil {
		return
	}
	glow.Visible = def.UseGlow
}
