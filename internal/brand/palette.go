package brand

import "github.com/brandkit/internal/document"

// Colour role keys every brand palette must define.
const (
	ColorPrimary         = "primary"
	ColorSecondary       = "secondary"
	ColorAccent          = "accent"
	ColorBackgroundLight = "background_light"
	ColorBackgroundDark  = "background_dark"
	ColorTextLight       = "text_light"
	ColorTextDark        = "text_dark"
)

// RequiredColors lists the palette keys a brand config must provide.
var RequiredColors = []string{
	ColorPrimary, ColorSecondary, ColorAccent,
	ColorBackgroundLight, ColorBackgroundDark, ColorTextLight, ColorTextDark,
}

const fallbackColor = "#000000"

// Palette maps colour role keys to hex colours. Extra keys are allowed.
type Palette map[string]string

// DefaultPalette fills in any key a brand palette leaves out.
var DefaultPalette = Palette{
	ColorPrimary:         "#6366F1",
	ColorSecondary:       "#8B5CF6",
	ColorAccent:          "#F59E0B",
	ColorBackgroundLight: "#FFFFFF",
	ColorBackgroundDark:  "#0F172A",
	ColorTextLight:       "#F8FAFC",
	ColorTextDark:        "#0F172A",
}

// Hex returns the colour for key from p, then DefaultPalette, then black.
func (p Palette) Hex(key string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	if v, ok := DefaultPalette[key]; ok {
		return v
	}
	return fallbackColor
}

// Resolve returns the colour for key as RGB.
func (p Palette) Resolve(key string) document.RGB {
	return HexToRGB(p.Hex(key))
}
