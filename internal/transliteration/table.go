package transliteration

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// RuleTable is an immutable pattern → IPA table. It is safe for concurrent use.
type RuleTable struct {
	rules  []Rule
	lookup map[string]string
	maxLen int
}

// Segment is one step of a scan: either a matched rule or a passed-through rune.
type Segment struct {
	Source  string `json:"source"`
	Output  string `json:"output"`
	Matched bool   `json:"matched"`
}

// BuildEffectiveTable overlays the configured variants onto the base table.
// It panics on an out-of-set configuration; validate user input first.
func BuildEffectiveTable(cfg Configuration) *RuleTable {
	if err := cfg.Validate(); err != nil {
		panic("transliteration: " + err.Error())
	}

	base := lo.SliceToMap(baseRules, func(r Rule) (string, string) {
		return r.Pattern, r.Replacement
	})
	overlay := lo.SliceToMap(vowelOverlay(cfg.U), func(r Rule) (string, string) {
		return r.Pattern, r.Replacement
	})
	merged := lo.Assign(base, overlay, map[string]string{
		"r": cfg.R.String(),
		"g": cfg.G.String(),
	})

	return newRuleTable(baseRules, merged)
}

func newRuleTable(order []Rule, lookup map[string]string) *RuleTable {
	rules := make([]Rule, len(order))
	for i, r := range order {
		rules[i] = Rule{Pattern: r.Pattern, Replacement: lookup[r.Pattern]}
	}
	maxLen := lo.Max(lo.Map(lo.Keys(lookup), func(p string, _ int) int {
		return utf8.RuneCountInString(p)
	}))
	return &RuleTable{rules: rules, lookup: lookup, maxLen: maxLen}
}

// Rules returns the table in definition order.
func (t *RuleTable) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Lookup returns the replacement for an exact pattern.
func (t *RuleTable) Lookup(pattern string) (string, bool) {
	v, ok := t.lookup[pattern]
	return v, ok
}

// Len is the number of patterns.
func (t *RuleTable) Len() int {
	return len(t.lookup)
}

// MaxPatternLen is the length in runes of the longest pattern.
func (t *RuleTable) MaxPatternLen() int {
	return t.maxLen
}

// Transliterate rewrites normalized text by longest match at each position.
// Runes no pattern covers are copied unchanged.
func (t *RuleTable) Transliterate(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	t.scan(text, func(_, out string, _ bool) {
		b.WriteString(out)
	})
	return b.String()
}

// Segments returns the scan of text as matched and passed-through pieces.
func (t *RuleTable) Segments(text string) []Segment {
	var segs []Segment
	t.scan(text, func(src, out string, matched bool) {
		segs = append(segs, Segment{Source: src, Output: out, Matched: matched})
	})
	return segs
}

func (t *RuleTable) scan(text string, emit func(src, out string, matched bool)) {
	runes := []rune(text)
	for i := 0; i < len(runes); {
		n := min(t.maxLen, len(runes)-i)
		matched := false
		for ; n > 0; n-- {
			chunk := string(runes[i : i+n])
			if out, ok := t.lookup[chunk]; ok {
				emit(chunk, out, true)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			ch := string(runes[i])
			emit(ch, ch, false)
			i++
		}
	}
}
