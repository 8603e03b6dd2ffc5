// Package textanalyzer classifies raw text fragments into layout roles and
// reconciles the headline hierarchy across a batch.
package textanalyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	confidenceExplicit = 1.0
	confidenceTag      = 0.9
	confidenceCTA      = 0.85
	confidenceHeadline = 0.8
	confidenceSubhead  = 0.75
	confidenceBody     = 0.7

	demotionFactor  = 0.8
	promotionFactor = 0.7

	maxTagWords          = 3
	maxUpperTagChars     = 15
	maxCTAWords          = 5
	maxHeadlineWords     = 10
	maxSubheadWords      = 30
	maxPromotedWordCount = 15
)

// actionCues are matched as case-insensitive substrings.
var actionCues = []string{
	"get started", "get ", "start", "sign up", "signup", "register", "subscribe",
	"join now", "join us", "join free", "buy", "shop", "order", "book", "download",
	"try ", "learn more", "read more", "discover", "explore", "claim", "apply",
	"contact", "call now", "click", "watch", "reserve", "save ",
}

var arrowGlyphs = "→➜➔➝➞»▶▸⟶↗"

var tagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(new|sale|hot|live|limited|exclusive|free|beta|update|breaking|featured|trending|coming soon|sold out)\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}\b`),
	regexp.MustCompile(`#\w+`),
	regexp.MustCompile(`(?i)\b(how[- ]to|guide|tips?|tutorial)\b`),
}

// Analyzer classifies text batches. The zero value is ready to use.
type Analyzer struct{}

// New returns an Analyzer.
func New() *Analyzer { return &Analyzer{} }

// Analyze classifies every input and reconciles the batch hierarchy. The
// result has the same length as inputs, ordered by role priority with ties
// kept in input order.
func (a *Analyzer) Analyze(inputs []TextInput) []ClassifiedText {
	if len(inputs) == 0 {
		return []ClassifiedText{}
	}
	out := make([]ClassifiedText, len(inputs))
	for i, in := range inputs {
		out[i] = Classify(in)
	}
	reconcileHierarchy(out)
	sort.SliceStable(out, func(i, j int) bool {
		return rolePriority[out[i].Role] < rolePriority[out[j].Role]
	})
	log.Debug().Int("inputs", len(inputs)).Msg("text batch classified")
	return out
}

// Classify classifies a single input without batch reconciliation.
func Classify(in TextInput) ClassifiedText {
	c := ClassifiedText{
		Text:                        in.Text,
		WordCount:                   len(strings.Fields(in.Text)),
		CharCount:                   utf8.RuneCountInString(in.Text),
		HasActionCue:                hasActionCue(in.Text),
		EndsWithTerminalPunctuation: endsWithTerminalPunctuation(in.Text),
	}
	if in.ExplicitRole.Valid() {
		c.Role = in.ExplicitRole
		c.Confidence = confidenceExplicit
		c.explicit = true
		return c
	}
	c.Role, c.Confidence = inferRole(c)
	return c
}

func inferRole(c ClassifiedText) (Role, float64) {
	trimmed := strings.TrimSpace(c.Text)
	switch {
	case isTag(trimmed, c.WordCount):
		return RoleTag, confidenceTag
	case c.HasActionCue && c.WordCount <= maxCTAWords:
		return RoleCTA, confidenceCTA
	case c.WordCount <= maxHeadlineWords && !c.EndsWithTerminalPunctuation:
		return RoleHeadline, confidenceHeadline
	case c.WordCount <= maxSubheadWords && !c.EndsWithTerminalPunctuation:
		return RoleSubhead, confidenceSubhead
	default:
		return RoleBody, confidenceBody
	}
}

func isTag(trimmed string, words int) bool {
	if words <= maxTagWords {
		for _, re := range tagPatterns {
			if re.MatchString(trimmed) {
				return true
			}
		}
	}
	return utf8.RuneCountInString(trimmed) <= maxUpperTagChars && isUpper(trimmed)
}

// isUpper requires at least one letter so that "2024" is not a tag.
func isUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 0
}

func hasActionCue(text string) bool {
	if strings.ContainsAny(text, arrowGlyphs) {
		return true
	}
	lower := strings.ToLower(text) + " "
	for _, cue := range actionCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

func endsWithTerminalPunctuation(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasSuffix(t, ".") || strings.HasSuffix(t, "!") || strings.HasSuffix(t, "?")
}

// reconcileHierarchy leaves at most one inferred headline per batch.
// Explicit roles are never changed: when the caller names a headline, every
// inferred headline is demoted; otherwise the first inferred headline stays.
// With no headline at all, the first short non-cta, non-tag inferred item is
// promoted; if none qualifies the batch keeps zero headlines.
func reconcileHierarchy(items []ClassifiedText) {
	explicitHeadline := false
	headlines := 0
	for _, it := range items {
		if it.Role == RoleHeadline {
			headlines++
			if it.explicit {
				explicitHeadline = true
			}
		}
	}

	if headlines > 1 || explicitHeadline {
		kept := explicitHeadline
		for i := range items {
			it := &items[i]
			if it.Role != RoleHeadline || it.explicit {
				continue
			}
			if !kept {
				kept = true
				continue
			}
			it.Role = RoleSubhead
			it.Confidence *= demotionFactor
		}
		return
	}
	if headlines == 1 {
		return
	}

	for i := range items {
		it := &items[i]
		if it.explicit || it.WordCount > maxPromotedWordCount || it.Role == RoleCTA || it.Role == RoleTag {
			continue
		}
		it.Role = RoleHeadline
		it.Confidence *= promotionFactor
		return
	}
}
