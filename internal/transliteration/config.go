package transliteration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVariant is returned when a variant name is not part of its closed set.
var ErrInvalidVariant = errors.New("invalid variant")

// UVariant selects the realization of the sixth vowel (ü, ù, ú).
type UVariant int

const (
	UVariantBarredI UVariant = iota
	UVariantSchwa
	UVariantUnroundedU
	// UVariantSadowsky also redefines i, e, a, o and u.
	UVariantSadowsky
)

// UVariants lists every ü variant in display order.
func UVariants() []UVariant {
	return []UVariant{UVariantBarredI, UVariantSchwa, UVariantUnroundedU, UVariantSadowsky}
}

func (u UVariant) String() string {
	switch u {
	case UVariantBarredI:
		return "ɨ"
	case UVariantSchwa:
		return "ə"
	case UVariantUnroundedU:
		return "ɯ"
	case UVariantSadowsky:
		return "sadowsky"
	}
	return fmt.Sprintf("UVariant(%d)", int(u))
}

func (u UVariant) valid() bool {
	return u >= UVariantBarredI && u <= UVariantSadowsky
}

// ParseUVariant accepts the IPA symbol or an ASCII alias.
func ParseUVariant(s string) (UVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ɨ", "barred-i":
		return UVariantBarredI, nil
	case "ə", "schwa":
		return UVariantSchwa, nil
	case "ɯ", "unrounded-u":
		return UVariantUnroundedU, nil
	case "sadowsky":
		return UVariantSadowsky, nil
	}
	return 0, fmt.Errorf("ü variant %q: %w", s, ErrInvalidVariant)
}

// RVariant selects the realization of "r".
type RVariant int

const (
	RVariantFricative RVariant = iota
	RVariantApproximant
)

// RVariants lists every r variant in display order.
func RVariants() []RVariant {
	return []RVariant{RVariantFricative, RVariantApproximant}
}

func (r RVariant) String() string {
	switch r {
	case RVariantFricative:
		return "ʐ"
	case RVariantApproximant:
		return "ɻ"
	}
	return fmt.Sprintf("RVariant(%d)", int(r))
}

func (r RVariant) valid() bool {
	return r == RVariantFricative || r == RVariantApproximant
}

// ParseRVariant accepts the IPA symbol or an ASCII alias.
func ParseRVariant(s string) (RVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ʐ", "fricative":
		return RVariantFricative, nil
	case "ɻ", "approximant":
		return RVariantApproximant, nil
	}
	return 0, fmt.Errorf("r variant %q: %w", s, ErrInvalidVariant)
}

// GVariant selects the realization of "g".
type GVariant int

const (
	GVariantFricative GVariant = iota
	GVariantApproximant
)

// GVariants lists every g variant in display order.
func GVariants() []GVariant {
	return []GVariant{GVariantFricative, GVariantApproximant}
}

func (g GVariant) String() string {
	switch g {
	case GVariantFricative:
		return "ɣ"
	case GVariantApproximant:
		return "ɰ"
	}
	return fmt.Sprintf("GVariant(%d)", int(g))
}

func (g GVariant) valid() bool {
	return g == GVariantFricative || g == GVariantApproximant
}

// ParseGVariant accepts the IPA symbol or an ASCII alias.
func ParseGVariant(s string) (GVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ɣ", "fricative":
		return GVariantFricative, nil
	case "ɰ", "approximant":
		return GVariantApproximant, nil
	}
	return 0, fmt.Errorf("g variant %q: %w", s, ErrInvalidVariant)
}

// Configuration is the set of user-selectable options. It is a comparable
// value and is never mutated by the engine.
type Configuration struct {
	U      UVariant
	R      RVariant
	G      GVariant
	Simple bool
}

// DefaultConfiguration returns {ɨ, ʐ, ɣ, simple off}.
func DefaultConfiguration() Configuration {
	return Configuration{
		U: UVariantBarredI,
		R: RVariantFricative,
		G: GVariantFricative,
	}
}

// NewConfiguration parses variant names and returns a validated configuration.
// Empty names keep the default for that option.
func NewConfiguration(u, r, g string, simple bool) (Configuration, error) {
	cfg := DefaultConfiguration()
	cfg.Simple = simple

	var err error
	if u != "" {
		if cfg.U, err = ParseUVariant(u); err != nil {
			return Configuration{}, err
		}
	}
	if r != "" {
		if cfg.R, err = ParseRVariant(r); err != nil {
			return Configuration{}, err
		}
	}
	if g != "" {
		if cfg.G, err = ParseGVariant(g); err != nil {
			return Configuration{}, err
		}
	}
	return cfg, nil
}

// Validate reports whether every field is inside its closed set.
func (c Configuration) Validate() error {
	if !c.U.valid() {
		return fmt.Errorf("ü variant %s: %w", c.U, ErrInvalidVariant)
	}
	if !c.R.valid() {
		return fmt.Errorf("r variant %s: %w", c.R, ErrInvalidVariant)
	}
	if !c.G.valid() {
		return fmt.Errorf("g variant %s: %w", c.G, ErrInvalidVariant)
	}
	return nil
}

func (c Configuration) String() string {
	mode := "full"
	if c.Simple {
		mode = "simple"
	}
	return fmt.Sprintf("ü=%s r=%s g=%s ipa=%s", c.U, c.R, c.G, mode)
}

// tableKey drops the fields that do not influence the rule table.
func (c Configuration) tableKey() Configuration {
	c.Simple = false
	return c
}
