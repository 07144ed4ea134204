package matcher

import (
	"strings"

	"modelguard/internal/ir"
)

// Normalizer reduces a model or schema identifier to a canonical form
// for comparison. Naming conventions differ between teams, so the
// strategy is pluggable; DefaultNormalizer covers the common
// case-fold / affix-strip / singularize conventions.
type Normalizer interface {
	Normalize(identifier string) string
}

// DefaultNormalizer case-folds, strips common affixes and singularizes
// naive English plurals before comparison.
type DefaultNormalizer struct {
	// Affixes are stripped from either end, longest first. Matched
	// case-insensitively.
	Affixes []string
}

// DefaultAffixes are the conventions seen across typical contract and
// model naming: User vs UserSchema vs UserDto.
var DefaultAffixes = []string{"Model", "Schema", "Dto", "Entity"}

func (n *DefaultNormalizer) Normalize(identifier string) string {
	affixes := n.Affixes
	if len(affixes) == 0 {
		affixes = DefaultAffixes
	}
	s := strings.ToLower(identifier)
	for {
		stripped := s
		for _, affix := range affixes {
			a := strings.ToLower(affix)
			if len(s) > len(a) && strings.HasSuffix(s, a) {
				s = strings.TrimSuffix(s, a)
			} else if len(s) > len(a) && strings.HasPrefix(s, a) {
				s = strings.TrimPrefix(s, a)
			}
		}
		if s == stripped {
			break
		}
	}
	return singularize(s)
}

// singularize handles regular English plurals only. Irregular forms
// pass through unchanged and simply have to match exactly.
func singularize(s string) string {
	switch {
	case len(s) > 3 && strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case len(s) > 4 && (strings.HasSuffix(s, "ches") || strings.HasSuffix(s, "shes")):
		return s[:len(s)-2]
	case len(s) > 3 && (strings.HasSuffix(s, "xes") || strings.HasSuffix(s, "zes") || strings.HasSuffix(s, "sses")):
		return s[:len(s)-2]
	case len(s) > 1 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return s[:len(s)-1]
	default:
		return s
	}
}

// Matcher resolves model identifiers to contract schema identifiers
// under identifier normalization. Pure and deterministic.
type Matcher struct {
	norm Normalizer
}

// New creates a matcher. A nil normalizer selects DefaultNormalizer.
func New(norm Normalizer) *Matcher {
	if norm == nil {
		norm = &DefaultNormalizer{}
	}
	return &Matcher{norm: norm}
}

// Match resolves a model identifier to zero-or-one schema entries.
// More than one candidate under normalization is ambiguous and fails
// closed: no match is returned rather than a guess.
func (m *Matcher) Match(modelID string, schemas ir.SchemaSet) (string, bool) {
	want := m.norm.Normalize(modelID)
	var found []string
	for _, id := range schemas.Identifiers() {
		if m.norm.Normalize(id) == want {
			found = append(found, id)
		}
	}
	if len(found) != 1 {
		return "", false
	}
	return found[0], true
}
