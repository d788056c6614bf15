package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// BOM is the UTF-8 byte-order mark as it appears once decoded to text.
const BOM = "\ufeff"

// ampersandEntity must be the last entity rule applied; see ValidateRules.
const ampersandEntity = "&amp;"

// Rule is a single literal substitution: every non-overlapping occurrence
// of From is replaced with To.
type Rule struct {
	From string // Literal text to replace
	To   string // Replacement text
}

// Result carries the outcome of applying a rule set to a piece of content
type Result struct {
	OriginalContent  []byte // Content before any rules were applied
	ModifiedContent  []byte // Content after all rules were applied
	ReplacementCount int    // Total occurrences replaced across all rules
	WasModified      bool   // Whether any rule changed the content
}

// DefaultRules returns the fixed rule set applied by textfix, in contract
// order: the BOM strip runs first, the entity decodes after it, and the
// ampersand decode last so it cannot swallow the `&` that starts the other
// entities.
func DefaultRules() []Rule {
	return []Rule{
		{From: BOM, To: ""},
		{From: "&apos;", To: "'"},
		{From: "&quot;", To: `"`},
		{From: ampersandEntity, To: "&"},
	}
}

// RulesWith returns DefaultRules with the extra rules spliced in after the
// BOM strip and before the entity decodes, keeping the ampersand rule last.
func RulesWith(extra ...Rule) []Rule {
	defaults := DefaultRules()
	rules := make([]Rule, 0, len(defaults)+len(extra))
	rules = append(rules, defaults[0])
	rules = append(rules, extra...)
	rules = append(rules, defaults[1:]...)
	return rules
}

// Replacer applies ordered literal substitution rules to text content
type Replacer struct{}

// NewReplacer creates a new Replacer
func NewReplacer() *Replacer {
	return &Replacer{}
}

// Replace applies every rule, in order, to the full content. Each rule
// replaces all non-overlapping occurrences of its From text.
func (r *Replacer) Replace(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		if rule.From == "" {
			continue
		}

		newContent := strings.ReplaceAll(currentContent, rule.From, rule.To)
		if newContent != currentContent {
			result.WasModified = true
			result.ReplacementCount += strings.Count(currentContent, rule.From)
		}

		currentContent = newContent
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules checks that a rule set is well formed: every rule has a
// non-empty From, and no rule runs after an `&amp;` decode that could match
// text the decode just produced. Applying `&amp;` last is a contract, not a
// convenience: a later rule matching `&`-prefixed text would reopen the
// double-unescaping hole the ordering exists to close.
func ValidateRules(rules []Rule) error {
	ampAt := -1
	for i, rule := range rules {
		if rule.From == "" {
			return errors.Errorf("rule %d: from text is required", i)
		}
		if rule.From == ampersandEntity {
			ampAt = i
		}
		if ampAt >= 0 && i > ampAt && strings.HasPrefix(rule.From, "&") {
			return errors.Errorf("rule %d: %q must run before the %s decode", i, rule.From, ampersandEntity)
		}
	}
	return nil
}

// TODO(dr.methodical): 🧪 Add benchmarks for large content
