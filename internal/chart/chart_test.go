package chart

import (
	"testing"

	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/stretchr/testify/assert"
)

func TestMappingTableListsEveryRule(t *testing.T) {
	out := MappingTable(transliteration.BuildEffectiveTable(transliteration.DefaultConfiguration()))
	assert.Contains(t, out, "Orthography → IPA")
	for _, r := range transliteration.BaseRules() {
		assert.Contains(t, out, r.Pattern+" → "+r.Replacement)
	}
}

func TestMappingTableFollowsVariants(t *testing.T) {
	cfg := transliteration.DefaultConfiguration()
	cfg.R = transliteration.RVariantApproximant
	out := MappingTable(transliteration.BuildEffectiveTable(cfg))
	assert.Contains(t, out, "r → ɻ")
	assert.NotContains(t, out, "r → ʐ")
}

func TestIPAChart(t *testing.T) {
	out := IPAChart(transliteration.DefaultConfiguration())
	for _, want := range []string{"Bilabial", "Retroflex", "Velar", "Front", "Back", "t͡ʃ", "ʈ͡ʂ", "ʐ", "ɣ", "ɨ", "l̪"} {
		assert.Contains(t, out, want)
	}
}

func TestIPAChartSimpleAndSadowsky(t *testing.T) {
	cfg := transliteration.Configuration{
		U:      transliteration.UVariantSadowsky,
		R:      transliteration.RVariantApproximant,
		G:      transliteration.GVariantApproximant,
		Simple: true,
	}
	out := IPAChart(cfg)
	for _, want := range []string{"ʧ", "ŧ", "ţ", "ɻ", "ɰ", "ɘ", "ɪ", "ʊ"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "t͡ʃ")
}

func TestExplain(t *testing.T) {
	cfg := transliteration.DefaultConfiguration()
	out := Explain(cfg, "Che 7")
	assert.Contains(t, out, "ch")
	assert.Contains(t, out, "t͡ʃ")
	assert.Contains(t, out, "rule")
	assert.Contains(t, out, "kept")

	cfg.Simple = true
	assert.Contains(t, Explain(cfg, "che"), "ʧ")
}
