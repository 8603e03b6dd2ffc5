package layers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/internal/document"
)

func builderTree() *document.Node {
	return document.NewContainer(document.KindFrame, "Social Post",
		document.NewContainer(document.KindFrame, "Text Content",
			document.NewText("Main Headline", "Launch Day", "Inter"),
			document.NewText("Sub Headline", "It is here", "Inter"),
			document.NewText("Body Copy", "Long text.", "Inter"),
			document.NewText("CTA Button Label", "Get started", "Inter"),
		),
		document.NewShape(document.KindVector, "Stray Vector"),
		document.NewContainer(document.KindFrame, "Brand Block",
			document.NewShape(document.KindRectangle, "Logo Mark"),
			document.NewText("Slogan", "Ship faster", "Inter"),
		),
		document.NewContainer(document.KindFrame, "Decor Layer",
			document.NewShape(document.KindEllipse, "Soft Blur"),
			document.NewShape(document.KindRectangle, "Accent Bar"),
		),
		document.NewContainer(document.KindFrame, "BG"),
	)
}

func names(nodes []*document.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestApplyNaming(t *testing.T) {
	root := builderTree()
	NewManager().ApplyNaming(root)

	assert.Equal(t, "Social Post", root.Name, "root is never renamed")
	assert.Equal(t, []string{"background", "decorative", "branding", "content", "Stray Vector"}, names(root.Children))

	content := FindLayer(root, NameContent)
	require.NotNil(t, content)
	assert.Equal(t, []string{"headline", "subhead", "body", "cta"}, names(content.Children))

	branding := FindLayer(root, NameBranding)
	require.NotNil(t, branding)
	assert.Equal(t, []string{"logo", "tagline"}, names(branding.Children))

	decor := FindLayer(root, NameDecorative)
	require.NotNil(t, decor)
	assert.Equal(t, []string{"glow", "accent-shape"}, names(decor.Children))
}

func TestApplyNamingIdempotent(t *testing.T) {
	m := NewManager()
	once := builderTree()
	m.ApplyNaming(once)

	twice := builderTree()
	m.ApplyNaming(twice)
	m.ApplyNaming(twice)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second pass changed the tree (-once +twice):\n%s", diff)
	}
}

func TestCanonicalNamesMapToThemselves(t *testing.T) {
	kinds := map[CanonicalName]document.Kind{
		NameHeadline: document.KindText, NameSubhead: document.KindText, NameBody: document.KindText,
		NameCTA: document.KindText, NameTag: document.KindText, NameTagline: document.KindText,
		NameGlow: document.KindEllipse, NameBackground: document.KindFrame, NameDecorative: document.KindFrame,
		NameBranding: document.KindFrame, NameContent: document.KindFrame, NameLogo: document.KindRectangle,
		NameAccentShape: document.KindRectangle, NamePattern: document.KindRectangle,
	}
	for name, kind := range kinds {
		got, ok := CanonicalFor(kind, name)
		assert.True(t, ok, name)
		assert.Equal(t, name, got)
	}
}

func TestCanonicalForRespectsKind(t *testing.T) {
	_, ok := CanonicalFor(document.KindRectangle, "bg")
	assert.False(t, ok, "background rule only applies to containers")

	_, ok = CanonicalFor(document.KindText, "Logo text")
	assert.False(t, ok, "text nodes never become the logo")

	got, ok := CanonicalFor(document.KindEllipse, "Glow")
	assert.True(t, ok)
	assert.Equal(t, NameGlow, got)

	_, ok = CanonicalFor(document.KindRectangle, "Glow")
	assert.False(t, ok)
}

func TestOrganizeLayerOrderIsStablePartition(t *testing.T) {
	root := document.NewContainer(document.KindFrame, "root",
		document.NewShape(document.KindVector, "z"),
		document.NewContainer(document.KindFrame, NameContent),
		document.NewShape(document.KindVector, "a"),
		document.NewContainer(document.KindFrame, NameBackground),
		document.NewShape(document.KindVector, "m"),
	)
	before := append([]*document.Node(nil), root.Children...)
	NewManager().OrganizeLayerOrder(root)

	assert.Equal(t, []string{"background", "content", "z", "a", "m"}, names(root.Children))
	assert.ElementsMatch(t, before, root.Children)
}

func TestValidate(t *testing.T) {
	m := NewManager()

	t.Run("not a frame", func(t *testing.T) {
		res := m.Validate(document.NewContainer(document.KindGroup, "g"))
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 1)
		assert.Empty(t, res.Warnings)
	})

	t.Run("empty frame", func(t *testing.T) {
		res := m.Validate(document.NewContainer(document.KindFrame, "f"))
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 1)
		assert.Len(t, res.Warnings, 1)
		assert.Len(t, res.Suggestions, 1)
	})

	t.Run("content in grandchild", func(t *testing.T) {
		root := document.NewContainer(document.KindFrame, "f",
			document.NewContainer(document.KindGroup, "wrapper",
				document.NewContainer(document.KindFrame, NameContent),
				document.NewContainer(document.KindFrame, NameBranding),
			),
		)
		res := m.Validate(root)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Warnings)
		assert.Equal(t, []string{
			`add a "decorative" layer for glow and accent shapes`,
			`top-level layer "wrapper" has no canonical name`,
		}, res.Suggestions)
	})

	t.Run("full tree", func(t *testing.T) {
		root := builderTree()
		m.ApplyNaming(root)
		res := m.Validate(root)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
		assert.Equal(t, []string{`top-level layer "Stray Vector" has no canonical name`}, res.Suggestions)
	})

	t.Run("canonical top level", func(t *testing.T) {
		root := document.NewContainer(document.KindFrame, "Any Root Name",
			document.NewContainer(document.KindFrame, NameBackground),
			document.NewContainer(document.KindFrame, NameDecorative),
			document.NewContainer(document.KindFrame, NameBranding),
			document.NewContainer(document.KindFrame, NameContent),
		)
		res := m.Validate(root)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Suggestions)
	})
}

func TestFindLayerAndTextLayers(t *testing.T) {
	root := builderTree()
	NewManager().ApplyNaming(root)

	assert.Nil(t, FindLayer(root, NamePattern))
	assert.Equal(t, document.KindEllipse, FindLayer(root, NameGlow).Kind)

	texts := GetTextLayers(root)
	assert.Equal(t, []string{"tagline", "headline", "subhead", "body", "cta"}, names(texts))
}
