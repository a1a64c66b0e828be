package version

import "fmt"

// Version is overridden at build time with -ldflags "-X ...version.Version=".
var Version = "1.1.0"

// About is the one-paragraph program description.
func About() string {
	return fmt.Sprintf("Mapudungun → IPA Converter\nVersion %s", Version)
}

// Guide explains the variant options shared by every front end.
const Guide = `Variants:
  ü  ɨ (default), ə, ɯ, or sadowsky (Sadowsky et al. 2013 vowels: a̝ ë ɪ ö ʊ ɘ)
  r  ʐ (default) or ɻ
  g  ɣ (default) or ɰ
Simple IPA replaces t͡ʃ ʈ͡ʂ t̪ n̪ l̪ with ʧ ŧ ţ ņ ļ.
Typographic apostrophes (’) are read as ', so t’ n’ l’ give dentals.
Reset restores ɨ ʐ ɣ and turns simple IPA off.`
