package textanalyzer

import "fmt"

// Role is the semantic classification of a text fragment.
type Role string

const (
	RoleTag      Role = "tag"
	RoleHeadline Role = "headline"
	RoleSubhead  Role = "subhead"
	RoleBody     Role = "body"
	RoleCTA      Role = "cta"
)

// rolePriority is the output order of a classified batch.
var rolePriority = map[Role]int{
	RoleTag:      0,
	RoleHeadline: 1,
	RoleSubhead:  2,
	RoleBody:     3,
	RoleCTA:      4,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePriority[r]
	return ok
}

// ParseRole converts a string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown text role %q", s)
	}
	return r, nil
}

// TextInput is one raw text fragment, optionally with a caller-assigned role.
type TextInput struct {
	Text         string `json:"text"`
	ExplicitRole Role   `json:"explicitRole,omitempty" validate:"omitempty,oneof=tag headline subhead body cta"`
}

// ClassifiedText is a text fragment with its inferred role and features.
type ClassifiedText struct {
	Text                        string  `json:"text"`
	Role                        Role    `json:"role"`
	WordCount                   int     `json:"wordCount"`
	CharCount                   int     `json:"charCount"`
	HasActionCue                bool    `json:"hasActionCue"`
	EndsWithTerminalPunctuation bool    `json:"endsWithTerminalPunctuation"`
	Confidence                  float64 `json:"confidence"`

	explicit bool
}

// Explicit reports whether the role was supplied by the caller.
func (c ClassifiedText) Explicit() bool { return c.explicit }
