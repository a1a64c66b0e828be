package transliteration

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransliterateDefault(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"mapuche", "maput͡ʃe"},
		{"che", "t͡ʃe"},
		{"mapudungun", "mapuθuŋun"},
		{"trutruka", "ʈ͡ʂuʈ͡ʂuka"},
		{"llalla", "ʎaʎa"},
		{"ñuke", "ɲuke"},
		{"küme", "kɨme"},
		{"huenu", "wenu"},
		{"quilquil", "kilkil"},
		{"ruka", "ʐuka"},
		{"pewma", "pewma"},
		{"shumpall", "ʃumpaʎ"},
		{"t'", "t̪"},
		{"n'amun", "n̪amun"},
		{"kal'ül", "kal̪ɨl"},
		{"123", "123"},
		{"mari mari!", "maʐi maʐi!"},
	}
	for _, tt := range tests {
		got := Transliterate(tt.input, DefaultConfiguration())
		if got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTransliterateLongestMatch(t *testing.T) {
	got := Transliterate("che", DefaultConfiguration())
	assert.Equal(t, "t͡ʃe", got)
	assert.NotEqual(t, "khe", got)

	segs := BuildEffectiveTable(DefaultConfiguration()).Segments("che")
	require.Len(t, segs, 2)
	assert.Equal(t, "ch", segs[0].Source)
	assert.Equal(t, "e", segs[1].Source)
}

func TestTransliterateVariants(t *testing.T) {
	tests := []struct {
		name  string
		cfg   func(*Configuration)
		input string
		want  string
	}{
		{"r default", func(*Configuration) {}, "r", "ʐ"},
		{"r approximant", func(c *Configuration) { c.R = RVariantApproximant }, "r", "ɻ"},
		{"g default", func(*Configuration) {}, "g", "ɣ"},
		{"g approximant", func(c *Configuration) { c.G = GVariantApproximant }, "g", "ɰ"},
		{"ü schwa", func(c *Configuration) { c.U = UVariantSchwa }, "ü ù ú", "ə ə ə"},
		{"ü unrounded", func(c *Configuration) { c.U = UVariantUnroundedU }, "ü", "ɯ"},
		{"sadowsky ü", func(c *Configuration) { c.U = UVariantSadowsky }, "ü", "ɘ"},
		{"sadowsky i", func(c *Configuration) { c.U = UVariantSadowsky }, "i", "ɪ"},
		{"sadowsky vowels", func(c *Configuration) { c.U = UVariantSadowsky }, "aeiou", "a̝ëɪöʊ"},
		{"sadowsky keeps r override", func(c *Configuration) {
			c.U = UVariantSadowsky
			c.R = RVariantApproximant
		}, "ruka", "ɻʊka̝"},
		{"simple ch", func(c *Configuration) { c.Simple = true }, "ch", "ʧ"},
		{"simple tr", func(c *Configuration) { c.Simple = true }, "tr", "ŧ"},
		{"simple dentals", func(c *Configuration) { c.Simple = true }, "t'n'l'", "ţņļ"},
		{"simple mapuche", func(c *Configuration) { c.Simple = true }, "mapuche", "mapuʧe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfiguration()
			tt.cfg(&cfg)
			assert.Equal(t, tt.want, Transliterate(tt.input, cfg))
		})
	}
}

func TestApostropheNormalization(t *testing.T) {
	plain := Transliterate("t'", DefaultConfiguration())
	typographic := Transliterate(Normalize("t’"), DefaultConfiguration())
	assert.Equal(t, "t̪", plain)
	assert.Equal(t, plain, typographic)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"MAPUCHE", "mapuche"},
		{"T’AMUN", "t'amun"},
		{"küme", "küme"},
		{"Kúme", "kúme"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := Normalize(got); again != got {
			t.Errorf("Normalize is not idempotent for %q: %q then %q", tt.input, got, again)
		}
	}
}

func TestNormalizeIsIdempotentWithCombiningMarks(t *testing.T) {
	marks := []rune{'\u0300', '\u0301', '\u0308', '\u0303'}
	for r := rune(0); r <= 0x1FFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		for _, m := range marks {
			in := string([]rune{r, m})
			once := Normalize(in)
			if twice := Normalize(once); twice != once {
				t.Fatalf("Normalize(%U %U) = %q, again %q", r, m, once, twice)
			}
		}
	}
	assert.Equal(t, Normalize("\U00010055\u0308"), Normalize(Normalize("\U00010055\u0308")))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, "maput͡ʃe", Convert("Mapuche", DefaultConfiguration()))
	assert.Equal(t, "kɨme", Convert("KÜME", DefaultConfiguration()))
}

func TestSimplify(t *testing.T) {
	assert.Equal(t, "", Simplify(""))
	assert.Equal(t, "ʧaŧeţņļ", Simplify("t͡ʃaʈ͡ʂet̪n̪l̪"))
	assert.Equal(t, "abc", Simplify("abc"))
}

func TestSimpleRulesDoNotOverlap(t *testing.T) {
	rules := SimpleRules()
	for i, a := range rules {
		for j, b := range rules {
			if i != j {
				assert.NotContains(t, a.Pattern, b.Pattern, "%q contains %q", a.Pattern, b.Pattern)
			}
		}
	}
}

func TestBuildEffectiveTableKeepsEveryPattern(t *testing.T) {
	for _, u := range UVariants() {
		for _, r := range RVariants() {
			for _, g := range GVariants() {
				cfg := Configuration{U: u, R: r, G: g}
				table := BuildEffectiveTable(cfg)
				require.Equal(t, len(BaseRules()), table.Len(), cfg.String())
				for _, rule := range BaseRules() {
					v, ok := table.Lookup(rule.Pattern)
					assert.True(t, ok, "%s: missing %q", cfg, rule.Pattern)
					assert.NotEmpty(t, v)
				}
				assert.Equal(t, 2, table.MaxPatternLen())
			}
		}
	}
}

func TestBuildEffectiveTableRulesOrder(t *testing.T) {
	table := BuildEffectiveTable(Configuration{U: UVariantSchwa, R: RVariantApproximant, G: GVariantApproximant})
	rules := table.Rules()
	base := BaseRules()
	require.Len(t, rules, len(base))
	for i := range base {
		assert.Equal(t, base[i].Pattern, rules[i].Pattern)
	}
	r, _ := table.Lookup("r")
	g, _ := table.Lookup("g")
	u, _ := table.Lookup("ü")
	assert.Equal(t, "ɻ", r)
	assert.Equal(t, "ɰ", g)
	assert.Equal(t, "ə", u)
}

func TestBuildEffectiveTablePanicsOnInvalidConfiguration(t *testing.T) {
	assert.Panics(t, func() { BuildEffectiveTable(Configuration{U: UVariant(42)}) })
	assert.Panics(t, func() { BuildEffectiveTable(Configuration{R: RVariant(7)}) })
	assert.Panics(t, func() { BuildEffectiveTable(Configuration{G: GVariant(-1)}) })
}

func TestEveryUVariantHasAnOverlay(t *testing.T) {
	for _, u := range UVariants() {
		assert.NotPanics(t, func() { vowelOverlay(u) }, u.String())
	}
}

func TestAlphabetIsFullyCovered(t *testing.T) {
	graphemes := []string{
		"a", "ch", "d", "e", "f", "g", "i", "k", "l", "ll", "m", "n", "ñ", "ng",
		"o", "p", "r", "s", "sh", "t", "tr", "u", "ü", "w", "y", "l'", "n'", "t'",
	}
	rng := rand.New(rand.NewPCG(1, 2))
	table := BuildEffectiveTable(DefaultConfiguration())

	for range 500 {
		var sb strings.Builder
		for range rng.IntN(12) + 1 {
			g := graphemes[rng.IntN(len(graphemes))]
			// "l" + "l'" would read as "ll" + "'".
			if g == "l'" && strings.HasSuffix(sb.String(), "l") {
				sb.WriteString("a")
			}
			sb.WriteString(g)
		}
		word := sb.String()
		for _, seg := range table.Segments(word) {
			assert.True(t, seg.Matched, "%q: %q passed through", word, seg.Source)
		}
	}
}

func TestUnknownCharactersPassThrough(t *testing.T) {
	table := BuildEffectiveTable(DefaultConfiguration())
	for _, in := range []string{"123", "?!.,", "   ", "bvxz", "日本"} {
		assert.Equal(t, in, table.Transliterate(in))
	}
}

func TestSelfCheck(t *testing.T) {
	require.NoError(t, SelfCheck())
}

func TestTableCache(t *testing.T) {
	cache := NewTableCache()
	cfg := DefaultConfiguration()

	first := cache.Table(cfg)
	cfg.Simple = true
	second := cache.Table(cfg)
	assert.Same(t, first, second, "simple mode must not rebuild the table")
	assert.Equal(t, 1, cache.Builds())

	cfg.R = RVariantApproximant
	third := cache.Table(cfg)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Builds())
}

func TestTableCacheConcurrentAccess(t *testing.T) {
	cache := NewTableCache()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg := Configuration{U: UVariants()[i%4], R: RVariants()[i%2], G: GVariantFricative}
			for range 50 {
				cache.Table(cfg).Transliterate("mapudungun")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, cache.Builds())
}
