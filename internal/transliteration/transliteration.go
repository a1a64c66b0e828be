// Package transliteration converts Mapudungun orthography to IPA with a
// longest-match rule table. Everything here is pure: the same text and
// Configuration always produce the same output.
package transliteration

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Transliterate converts normalized text with the effective table for cfg,
// then applies the simple-IPA pass when cfg.Simple is set.
func Transliterate(text string, cfg Configuration) string {
	out := DefaultCache.Table(cfg).Transliterate(text)
	if cfg.Simple {
		out = Simplify(out)
	}
	return out
}

// Simplify replaces multi-codepoint clusters with single precomposed symbols.
// Each replacement is a global find-and-replace over the whole string.
func Simplify(ipa string) string {
	for _, r := range simpleRules {
		ipa = strings.ReplaceAll(ipa, r.Pattern, r.Replacement)
	}
	return ipa
}

// Normalize prepares raw input for Transliterate: typographic apostrophes
// become ASCII, decomposed diacritics are composed (NFC) and letters are
// lowercased. Normalize is idempotent.
func Normalize(raw string) string {
	s := norm.NFC.String(strings.ReplaceAll(raw, "’", "'"))
	// Composition can yield an uppercase letter from lowercase parts, so
	// repeat until lowercasing and composing are both no-ops.
	for range 4 {
		next := norm.NFC.String(strings.ToLower(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Convert normalizes raw input and transliterates it.
func Convert(raw string, cfg Configuration) string {
	return Transliterate(Normalize(raw), cfg)
}

// SelfCheck verifies the default and simple tables against a known word.
func SelfCheck() error {
	cfg := DefaultConfiguration()
	if got, want := Transliterate("mapuche", cfg), "maput͡ʃe"; got != want {
		return fmt.Errorf("self-check: got %q, want %q", got, want)
	}
	cfg.Simple = true
	if got, want := Transliterate("mapuche", cfg), "mapuʧe"; got != want {
		return fmt.Errorf("self-check (simple): got %q, want %q", got, want)
	}
	return nil
}
