package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/layers"
)

func canonicalTree() *document.Node {
	return document.NewContainer(document.KindFrame, "Post",
		document.NewContainer(document.KindFrame, layers.NameBackground),
		document.NewContainer(document.KindFrame, layers.NameDecorative,
			document.NewShape(document.KindEllipse, layers.NameGlow),
		),
		document.NewContainer(document.KindFrame, layers.NameContent,
			document.NewText(layers.NameHeadline, "Launch", "Inter"),
			document.NewText(layers.NameBody, "Details.", "Inter"),
			document.NewText(layers.NameCTA, "Get started", "Inter"),
		),
	)
}

func solidColor(t *testing.T, n *document.Node) document.RGB {
	t.Helper()
	require.Len(t, n.Fills, 1)
	require.Equal(t, document.PaintSolid, n.Fills[0].Type)
	return *n.Fills[0].Color
}

func TestApplyDark(t *testing.T) {
	palette := brand.Palette{brand.ColorBackgroundDark: "#000000", brand.ColorTextLight: "#FFFFFF", brand.ColorAccent: "#FF0000"}
	root := canonicalTree()
	root.Children[1].Children[0].Visible = false

	NewEngine(palette).Apply(root, "dark")

	assert.Equal(t, document.RGB{}, solidColor(t, layers.FindLayer(root, layers.NameBackground)))
	assert.Nil(t, root.Fills, "background layer takes the fill, not the root")
	assert.Equal(t, document.RGB{R: 1, G: 1, B: 1}, solidColor(t, layers.FindLayer(root, layers.NameHeadline)))
	assert.Equal(t, document.RGB{R: 1, G: 1, B: 1}, solidColor(t, layers.FindLayer(root, layers.NameBody)))
	assert.Equal(t, document.RGB{R: 1}, solidColor(t, layers.FindLayer(root, layers.NameCTA)))
	assert.True(t, layers.FindLayer(root, layers.NameGlow).Visible)
}

func TestApplyLightHidesGlowAndUsesDefaults(t *testing.T) {
	root := canonicalTree()
	NewEngine(nil).Apply(root, "light")

	bg := solidColor(t, layers.FindLayer(root, layers.NameBackground))
	assert.Equal(t, brand.HexToRGB(brand.DefaultPalette[brand.ColorBackgroundLight]), bg)
	assert.Equal(t, brand.HexToRGB(brand.DefaultPalette[brand.ColorPrimary]), solidColor(t, layers.FindLayer(root, layers.NameCTA)))
	assert.False(t, layers.FindLayer(root, layers.NameGlow).Visible)
}

func TestApplyGradient(t *testing.T) {
	palette := brand.Palette{brand.ColorPrimary: "#FF0000", brand.ColorSecondary: "#0000FF"}
	root := canonicalTree()
	NewEngine(palette).Apply(root, "gradient")

	bg := layers.FindLayer(root, layers.NameBackground)
	require.Len(t, bg.Fills, 1)
	assert.Equal(t, document.PaintLinearGradient, bg.Fills[0].Type)
	assert.Equal(t, []document.GradientStop{
		{Position: 0, Color: document.RGB{R: 1}},
		{Position: 1, Color: document.RGB{B: 1}},
	}, bg.Fills[0].Stops)
}

func TestApplyFallsBackToRootBackground(t *testing.T) {
	root := document.NewContainer(document.KindFrame, "Post",
		document.NewText(layers.NameHeadline, "Hi", ""),
	)
	NewEngine(brand.Palette{brand.ColorPrimary: "#00FF00"}).Apply(root, "bold")
	assert.Equal(t, document.RGB{G: 1}, solidColor(t, root))
}

func TestApplyMalformedPaletteResolvesBlack(t *testing.T) {
	root := canonicalTree()
	NewEngine(brand.Palette{brand.ColorBackgroundDark: "nope"}).Apply(root, "dark")
	assert.Equal(t, document.RGB{}, solidColor(t, layers.FindLayer(root, layers.NameBackground)))
}

func TestApplyUnknownThemeIsNoOp(t *testing.T) {
	root := canonicalTree()
	NewEngine(nil).Apply(root, "neon")

	if diff := cmp.Diff(canonicalTree(), root); diff != "" {
		t.Errorf("unknown theme changed the tree (-before +after):\n%s", diff)
	}
}

func TestApplyWithoutGlowOrDecorative(t *testing.T) {
	root := document.NewContainer(document.KindFrame, "Post",
		document.NewContainer(document.KindFrame, layers.NameDecorative),
		document.NewShape(document.KindEllipse, layers.NameGlow),
	)
	NewEngine(nil).Apply(root, "light")

	assert.True(t, root.Children[1].Visible, "glow outside decorative is not touched")
}

func TestApplyNonTextCTAKeepsFill(t *testing.T) {
	cta := document.NewShape(document.KindRectangle, layers.NameCTA)
	root := document.NewContainer(document.KindFrame, "Post", cta)
	NewEngine(nil).Apply(root, "dark")
	assert.Nil(t, cta.Fills)
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"bold", "dark", "gradient", "light", "minimal"}, IDs())
	_, ok := Lookup("dark")
	assert.True(t, ok)
}
