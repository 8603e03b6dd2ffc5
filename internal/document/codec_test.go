package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaultsVisible(t *testing.T) {
	root, err := Decode([]byte(`{"type":"FRAME","name":"Post","width":1080,"height":1080,"children":[
		{"type":"TEXT","name":"Title","characters":"Hello"},
		{"type":"ELLIPSE","name":"Glow","visible":false}
	]}`))
	require.NoError(t, err)

	assert.True(t, root.Visible)
	require.Len(t, root.Children, 2)
	assert.True(t, root.Children[0].Visible)
	assert.False(t, root.Children[1].Visible)
	assert.True(t, root.Children[0].IsText())
	assert.True(t, root.IsContainer())
}

func TestDecodeNull(t *testing.T) {
	_, err := Decode([]byte(`null`))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDecodeLenientRepairsTrailingComma(t *testing.T) {
	root, err := DecodeLenient([]byte(`{"type":"FRAME","name":"Post","children":[{"type":"TEXT","name":"a",},],}`))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "a", root.Children[0].Name)
}

func TestEncodeRoundTrip(t *testing.T) {
	root := NewContainer(KindFrame, "Post",
		NewText("Title", "Hello", "Inter"),
		NewContainer(KindFrame, "Decor", NewShape(KindEllipse, "Glow")),
	)
	root.Width, root.Height = 1200, 628
	root.Children[0].SetFills(Solid(RGB{R: 1}))

	data, err := Encode(root)
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)

	if diff := cmp.Diff(root, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSetFillsRejectsGroups(t *testing.T) {
	g := NewContainer(KindGroup, "g")
	assert.False(t, g.SetFills(Solid(RGB{})))
	assert.Nil(t, g.Fills)
}

func TestWalkStops(t *testing.T) {
	root := NewContainer(KindFrame, "root",
		NewText("a", "", ""),
		NewText("b", "", ""),
		NewText("c", "", ""),
	)
	var seen []string
	Walk(root, func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "b"
	})
	assert.Equal(t, []string{"root", "a", "b"}, seen)
}
