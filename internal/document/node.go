package document

// Kind identifies the drawable type of a node.
type Kind string

const (
	KindFrame     Kind = "FRAME"
	KindGroup     Kind = "GROUP"
	KindComponent Kind = "COMPONENT"
	KindInstance  Kind = "INSTANCE"
	KindText      Kind = "TEXT"
	KindRectangle Kind = "RECTANGLE"
	KindEllipse   Kind = "ELLIPSE"
	KindVector    Kind = "VECTOR"
)

// IsContainer reports whether nodes of this kind own ordered children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindFrame, KindGroup, KindComponent, KindInstance:
		return true
	}
	return false
}

// IsText reports whether nodes of this kind carry character content.
func (k Kind) IsText() bool { return k == KindText }

// IsFillable reports whether nodes of this kind accept paints.
// Groups have no paint of their own.
func (k Kind) IsFillable() bool { return k != KindGroup && k != "" }

// RGB is a colour with channels in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// PaintType is the kind of paint held in a fill slot.
type PaintType string

const (
	PaintSolid          PaintType = "SOLID"
	PaintLinearGradient PaintType = "GRADIENT_LINEAR"
)

// GradientStop is one colour stop of a gradient paint.
type GradientStop struct {
	Position float64 `json:"position"`
	Color    RGB     `json:"color"`
}

// Paint is a single fill entry.
type Paint struct {
	Type  PaintType      `json:"type"`
	Color *RGB           `json:"color,omitempty"`
	Stops []GradientStop `json:"stops,omitempty"`
}

// Solid returns a solid paint of the given colour.
func Solid(c RGB) Paint {
	return Paint{Type: PaintSolid, Color: &c}
}

// LinearGradient returns a two-stop gradient from one colour to another.
func LinearGradient(from, to RGB) Paint {
	return Paint{
		Type: PaintLinearGradient,
		Stops: []GradientStop{
			{Position: 0, Color: from},
			{Position: 1, Color: to},
		},
	}
}

// Node is an element of a document tree. Containers exclusively own their
// children; the tree is acyclic by construction.
type Node struct {
	ID         string  `json:"id,omitempty"`
	Kind       Kind    `json:"type"`
	Name       string  `json:"name"`
	Visible    bool    `json:"visible"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Fills      []Paint `json:"fills,omitempty"`
	Characters string  `json:"characters,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// NewContainer creates a visible container node.
func NewContainer(kind Kind, name string, children ...*Node) *Node {
	return &Node{Kind: kind, Name: name, Visible: true, Children: children}
}

// NewText creates a visible text node.
func NewText(name, characters, fontFamily string) *Node {
	return &Node{Kind: KindText, Name: name, Visible: true, Characters: characters, FontFamily: fontFamily}
}

// NewShape creates a visible leaf node of the given kind.
func NewShape(kind Kind, name string) *Node {
	return &Node{Kind: kind, Name: name, Visible: true}
}

func (n *Node) IsText() bool      { return n != nil && n.Kind.IsText() }
func (n *Node) IsContainer() bool { return n != nil && n.Kind.IsContainer() }
func (n *Node) IsFillable() bool  { return n != nil && n.Kind.IsFillable() }

// Append adds children to a container. It is a no-op for leaf nodes.
func (n *Node) Append(children ...*Node) {
	if !n.IsContainer() {
		return
	}
	n.Children = append(n.Children, children...)
}

// SetFills replaces the node's paints if it is fillable.
func (n *Node) SetFills(paints ...Paint) bool {
	if !n.IsFillable() {
		return false
	}
	n.Fills = append([]Paint(nil), paints...)
	return true
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// stops the walk.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}
