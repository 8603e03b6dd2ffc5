package layers

import (
	"strings"

	"github.com/brandkit/internal/document"
)

// CanonicalName is a structural role label used for lookup and validation.
type CanonicalName = string

const (
	NameRoot        CanonicalName = "root"
	NameContent     CanonicalName = "content"
	NameHeadline    CanonicalName = "headline"
	NameSubhead     CanonicalName = "subhead"
	NameBody        CanonicalName = "body"
	NameCTA         CanonicalName = "cta"
	NameTag         CanonicalName = "tag"
	NameBranding    CanonicalName = "branding"
	NameLogo        CanonicalName = "logo"
	NameTagline     CanonicalName = "tagline"
	NameDecorative  CanonicalName = "decorative"
	NameGlow        CanonicalName = "glow"
	NameAccentShape CanonicalName = "accent-shape"
	NamePattern     CanonicalName = "pattern"
	NameBackground  CanonicalName = "background"
)

// Vocabulary lists every canonical name.
var Vocabulary = []CanonicalName{
	NameRoot, NameContent, NameHeadline, NameSubhead, NameBody, NameCTA, NameTag,
	NameBranding, NameLogo, NameTagline, NameDecorative, NameGlow, NameAccentShape,
	NamePattern, NameBackground,
}

// IsCanonical reports whether name belongs to the vocabulary.
func IsCanonical(name string) bool {
	for _, v := range Vocabulary {
		if v == name {
			return true
		}
	}
	return false
}

type kindClass int

const (
	classText kindClass = iota
	classContainer
	classEllipse
	classNonText
)

func (c kindClass) matches(k document.Kind) bool {
	switch c {
	case classText:
		return k.IsText()
	case classContainer:
		return k.IsContainer()
	case classEllipse:
		return k == document.KindEllipse
	default:
		return !k.IsText()
	}
}

type namingRule struct {
	class    kindClass
	any      []string
	excluded []string
	target   CanonicalName
}

func (r namingRule) match(kind document.Kind, lower string) bool {
	if !r.class.matches(kind) {
		return false
	}
	for _, ex := range r.excluded {
		if strings.Contains(lower, ex) {
			return false
		}
	}
	for _, kw := range r.any {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// namingRules is ordered; the first match wins. Every canonical name maps to
// itself under its own kind class, which keeps ApplyNaming idempotent.
var namingRules = []namingRule{
	{class: classText, any: []string{"cta", "button"}, target: NameCTA},
	{class: classText, any: []string{"subhead", "sub-head", "sub head", "subtitle"}, target: NameSubhead},
	{class: classText, any: []string{"head", "title"}, excluded: []string{"sub"}, target: NameHeadline},
	{class: classText, any: []string{"tagline", "slogan"}, target: NameTagline},
	{class: classText, any: []string{"tag", "badge", "label"}, target: NameTag},
	{class: classText, any: []string{"body", "paragraph", "copy", "description"}, target: NameBody},
	{class: classEllipse, any: []string{"glow", "blur"}, target: NameGlow},
	{class: classContainer, any: []string{"background", "bg"}, target: NameBackground},
	{class: classContainer, any: []string{"decor"}, target: NameDecorative},
	{class: classContainer, any: []string{"brand"}, target: NameBranding},
	{class: classContainer, any: []string{"content", "text"}, target: NameContent},
	{class: classNonText, any: []string{"logo"}, target: NameLogo},
	{class: classNonText, any: []string{"accent"}, target: NameAccentShape},
	{class: classNonText, any: []string{"pattern", "texture"}, target: NamePattern},
}

// CanonicalFor returns the canonical name for a node of the given kind and
// current name, or false when no rule matches.
func CanonicalFor(kind document.Kind, name string) (CanonicalName, bool) {
	lower := strings.ToLower(name)
	for _, r := range namingRules {
		if r.match(kind, lower) {
			return r.target, true
		}
	}
	return "", false
}
