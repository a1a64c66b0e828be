// Package chart renders the rule table and a simplified IPA chart for
// terminal display.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/jusunglee/mapuipa/internal/transliteration"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const mappingColumns = 3

// MappingTable lists every rule as "pattern → ipa" in three columns.
func MappingTable(t *transliteration.RuleTable) string {
	rules := t.Rules()
	size := (len(rules) + mappingColumns - 1) / mappingColumns
	columns := lo.Chunk(rules, size)

	rows := make([][]string, size)
	for i := range rows {
		rows[i] = make([]string, mappingColumns)
		for c, col := range columns {
			if i < len(col) {
				rows[i][c] = fmt.Sprintf("%6s → %s", col[i].Pattern, col[i].Replacement)
			}
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Rows(rows...)

	return titleStyle.Render("Orthography → IPA") + "\n" + tbl.String()
}

type chartRow struct {
	label    string
	patterns []string
}

// Cells are orthographic patterns, resolved through the effective table so
// the chart follows the selected variants.
var (
	consonantHeaders = []string{"", "Bilabial", "Dental", "Alveolar", "Palatal", "Retroflex", "Velar"}
	consonantRows    = []chartRow{
		{"Stops", []string{"p", "t'", "t", "ch", "tr", "k"}},
		{"Nasal", []string{"m", "n'", "n", "ñ", "", "ng"}},
		{"Fricative", []string{"f", "d", "s", "sh", "r", "g"}},
		{"Approximant", []string{"w", "l'", "l", "y", "", ""}},
	}

	vowelHeaders = []string{"", "Front", "Central", "Back"}
	vowelRows    = []chartRow{
		{"High", []string{"i", "ü", "u"}},
		{"Mid", []string{"e", "", "o"}},
		{"Low", []string{"", "a", ""}},
	}
)

// IPAChart renders the consonant and vowel charts for cfg.
func IPAChart(cfg transliteration.Configuration) string {
	t := transliteration.DefaultCache.Table(cfg)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Simplified IPA Chart"))
	sb.WriteString("\n")
	sb.WriteString(grid(t, cfg.Simple, consonantHeaders, consonantRows))
	sb.WriteString("\n")
	sb.WriteString(grid(t, cfg.Simple, vowelHeaders, vowelRows))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Variants: %s", cfg))
	return sb.String()
}

func grid(t *transliteration.RuleTable, simple bool, headers []string, rows []chartRow) string {
	data := lo.Map(rows, func(r chartRow, _ int) []string {
		cells := []string{r.label}
		for _, p := range r.patterns {
			cells = append(cells, symbol(t, simple, p))
		}
		return cells
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(data...).
		String()
}

func symbol(t *transliteration.RuleTable, simple bool, pattern string) string {
	if pattern == "" {
		return ""
	}
	s, ok := t.Lookup(pattern)
	if !ok {
		return ""
	}
	if simple {
		s = transliteration.Simplify(s)
	}
	return s
}

// Explain shows how text is segmented: one row per match or passed-through
// character. Whitespace segments are skipped.
func Explain(cfg transliteration.Configuration, text string) string {
	segs := transliteration.DefaultCache.Table(cfg).Segments(transliteration.Normalize(text))
	rows := lo.FilterMap(segs, func(s transliteration.Segment, _ int) ([]string, bool) {
		if strings.TrimSpace(s.Source) == "" {
			return nil, false
		}
		out, rule := s.Output, "rule"
		if cfg.Simple {
			out = transliteration.Simplify(out)
		}
		if !s.Matched {
			rule = "kept"
		}
		return []string{s.Source, out, rule}, true
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Input", "IPA", "").
		Rows(rows...).
		String()
}
