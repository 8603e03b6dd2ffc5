// Package layers normalises document trees onto the canonical layer
// vocabulary and validates their structure.
package layers

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/brandkit/internal/document"
)

// topLevelOrder is the canonical order of the root's structural children.
var topLevelOrder = []CanonicalName{NameBackground, NameDecorative, NameBranding, NameContent}

// ValidationResult is the outcome of a structural validation.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Manager renames, reorders and inspects document layers.
type Manager struct {
	rootKind document.Kind
}

// NewManager returns a Manager that expects roots of kind FRAME.
func NewManager() *Manager {
	return &Manager{rootKind: document.KindFrame}
}

// ApplyNaming renames every descendant of root onto the canonical vocabulary
// and then reorders the root's children.
func (m *Manager) ApplyNaming(root *document.Node) {
	if root == nil {
		return
	}
	renamed := 0
	for _, c := range root.Children {
		renamed += renameTree(c)
	}
	m.OrganizeLayerOrder(root)
	log.Debug().Str("root", root.Name).Int("renamed", renamed).Msg("layer naming applied")
}

func renameTree(n *document.Node) int {
	count := 0
	if name, ok := CanonicalFor(n.Kind, n.Name); ok && name != n.Name {
		n.Name = name
		count++
	}
	for _, c := range n.Children {
		count += renameTree(c)
	}
	return count
}

// OrganizeLayerOrder moves the root's background, decorative, branding and
// content children to the front in that order. All other children follow in
// their original relative order.
func (m *Manager) OrganizeLayerOrder(root *document.Node) {
	if root == nil || len(root.Children) == 0 {
		return
	}
	ordered := make([]*document.Node, 0, len(root.Children))
	taken := make([]bool, len(root.Children))
	for _, name := range topLevelOrder {
		for i, c := range root.Children {
			if !taken[i] && c.Name == name {
				ordered = append(ordered, c)
				taken[i] = true
				break
			}
		}
	}
	for i, c := range root.Children {
		if !taken[i] {
			ordered = append(ordered, c)
		}
	}
	root.Children = ordered
}

// Validate checks that root is a frame holding the required structure.
func (m *Manager) Validate(root *document.Node) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}, Suggestions: []string{}}
	if root == nil || root.Kind != m.rootKind {
		res.Errors = append(res.Errors, "root layer must be a "+string(m.rootKind))
		return res
	}

	present := make(map[string]bool)
	for _, c := range root.Children {
		present[c.Name] = true
		for _, gc := range c.Children {
			present[gc.Name] = true
		}
	}

	if !present[NameContent] {
		res.Errors = append(res.Errors, "missing required \"content\" layer")
	}
	if !present[NameBranding] {
		res.Warnings = append(res.Warnings, "missing \"branding\" layer; logo and tagline have no home")
	}
	if !present[NameDecorative] {
		res.Suggestions = append(res.Suggestions, "add a \"decorative\" layer for glow and accent shapes")
	}
	for _, c := range root.Children {
		if !IsCanonical(c.Name) {
			res.Suggestions = append(res.Suggestions, fmt.Sprintf("top-level layer %q has no canonical name", c.Name))
		}
	}
	res.Valid = len(res.Errors) == 0
	return res
}

// FindLayer returns the first node named name in a pre-order walk, or nil.
func FindLayer(root *document.Node, name CanonicalName) *document.Node {
	var found *document.Node
	document.Walk(root, func(n *document.Node) bool {
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// GetTextLayers returns all text nodes under root in pre-order.
func GetTextLayers(root *document.Node) []*document.Node {
	var out []*document.Node
	document.Walk(root, func(n *document.Node) bool {
		if n.IsText() {
			out = append(out, n)
		}
		return true
	})
	return out
}
