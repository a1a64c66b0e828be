package transliteration

// Rule maps an orthographic pattern to its IPA realization.
type Rule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"ipa"`
}

// Mapudungun orthography (Alfabeto Unificado, plus apostrophe dentals).
// Longer patterns are listed first for readability only; matching is by length.
var baseRules = []Rule{
	{"ch", "t͡ʃ"}, {"tr", "ʈ͡ʂ"}, {"sh", "ʃ"}, {"ng", "ŋ"}, {"ll", "ʎ"},
	{"hu", "w"}, {"qu", "k"}, {"c", "k"},
	{"ñ", "ɲ"}, {"g", "ɣ"}, {"r", "ʐ"}, {"d", "θ"},
	{"l'", "l̪"}, {"n'", "n̪"}, {"t'", "t̪"},
	{"ü", "ɨ"}, {"ù", "ɨ"}, {"ú", "ɨ"},
	{"a", "a"}, {"e", "e"}, {"i", "i"}, {"o", "o"}, {"u", "u"},
	{"p", "p"}, {"t", "t"}, {"k", "k"}, {"f", "f"}, {"s", "s"},
	{"m", "m"}, {"n", "n"}, {"l", "l"}, {"w", "w"}, {"y", "j"},
}

// Letters written for the sixth vowel.
var sixthVowelLetters = []string{"ü", "ù", "ú"}

// Sadowsky et al. (2013) allophones for the remaining vowels.
var sadowskyVowels = []Rule{
	{"i", "ɪ"}, {"e", "ë"}, {"a", "a̝"}, {"o", "ö"}, {"u", "ʊ"},
}

// simpleRules replace diacritic clusters with single precomposed symbols.
// No source string is a substring of another.
var simpleRules = []Rule{
	{"t͡ʃ", "ʧ"}, // U+02A7
	{"ʈ͡ʂ", "ŧ"}, // U+0167
	{"t̪", "ţ"},  // U+0163
	{"n̪", "ņ"},  // U+0146
	{"l̪", "ļ"},  // U+013C
}

// BaseRules returns a copy of the base orthography table.
func BaseRules() []Rule {
	return append([]Rule(nil), baseRules...)
}

// SimpleRules returns a copy of the simple-IPA substitution table.
func SimpleRules() []Rule {
	return append([]Rule(nil), simpleRules...)
}

func vowelOverlay(u UVariant) []Rule {
	var sixth string
	switch u {
	case UVariantBarredI:
		sixth = "ɨ"
	case UVariantSchwa:
		sixth = "ə"
	case UVariantUnroundedU:
		sixth = "ɯ"
	case UVariantSadowsky:
		sixth = "ɘ"
	default:
		panic("transliteration: unknown ü variant " + u.String())
	}

	overlay := make([]Rule, 0, len(sixthVowelLetters)+len(sadowskyVowels))
	for _, letter := range sixthVowelLetters {
		overlay = append(overlay, Rule{letter, sixth})
	}
	if u == UVariantSadowsky {
		overlay = append(overlay, sadowskyVowels...)
	}
	return overlay
}
