// Package preferences holds the session's transliteration options in memory.
// Nothing here is written to disk; a new process starts from the defaults.
package preferences

import (
	"sync"

	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/samber/lo"
)

// Store is one session's configuration together with its effective table.
// The table is rebuilt only when the configuration changes.
type Store struct {
	mu    sync.RWMutex
	cfg   transliteration.Configuration
	table *transliteration.RuleTable
	cache *transliteration.TableCache
}

func NewStore() *Store {
	return NewStoreWith(transliteration.DefaultConfiguration())
}

// NewStoreWith starts a session from cfg. It panics if cfg is invalid.
func NewStoreWith(cfg transliteration.Configuration) *Store {
	s := &Store{cache: transliteration.DefaultCache}
	if err := s.Set(cfg); err != nil {
		panic("preferences: " + err.Error())
	}
	return s
}

// Configuration returns a snapshot of the current options.
func (s *Store) Configuration() transliteration.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Table returns the effective table for the current options.
func (s *Store) Table() *transliteration.RuleTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Set replaces the configuration after validating it.
func (s *Store) Set(cfg transliteration.Configuration) error {
	return s.Update(func(c *transliteration.Configuration) { *c = cfg })
}

// Update applies fn to a copy of the configuration and stores the result if
// it is valid. The store is left untouched otherwise.
func (s *Store) Update(fn func(*transliteration.Configuration)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg
	fn(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.table = s.cache.Table(cfg)
	return nil
}

func (s *Store) SetUVariant(u transliteration.UVariant) error {
	return s.Update(func(c *transliteration.Configuration) { c.U = u })
}

func (s *Store) SetRVariant(r transliteration.RVariant) error {
	return s.Update(func(c *transliteration.Configuration) { c.R = r })
}

func (s *Store) SetGVariant(g transliteration.GVariant) error {
	return s.Update(func(c *transliteration.Configuration) { c.G = g })
}

func (s *Store) SetSimple(simple bool) {
	_ = s.Update(func(c *transliteration.Configuration) { c.Simple = simple })
}

// CycleUVariant advances to the next ü variant, wrapping around.
func (s *Store) CycleUVariant() transliteration.UVariant {
	var next transliteration.UVariant
	_ = s.Update(func(c *transliteration.Configuration) {
		c.U = nextOf(transliteration.UVariants(), c.U)
		next = c.U
	})
	return next
}

func (s *Store) CycleRVariant() transliteration.RVariant {
	var next transliteration.RVariant
	_ = s.Update(func(c *transliteration.Configuration) {
		c.R = nextOf(transliteration.RVariants(), c.R)
		next = c.R
	})
	return next
}

func (s *Store) CycleGVariant() transliteration.GVariant {
	var next transliteration.GVariant
	_ = s.Update(func(c *transliteration.Configuration) {
		c.G = nextOf(transliteration.GVariants(), c.G)
		next = c.G
	})
	return next
}

// ToggleSimple flips simple-IPA mode and returns the new value.
func (s *Store) ToggleSimple() bool {
	var simple bool
	_ = s.Update(func(c *transliteration.Configuration) {
		c.Simple = !c.Simple
		simple = c.Simple
	})
	return simple
}

// Reset restores {ɨ, ʐ, ɣ, simple off}.
func (s *Store) Reset() {
	_ = s.Set(transliteration.DefaultConfiguration())
}

// Convert normalizes raw input and transliterates it with the session options.
func (s *Store) Convert(raw string) string {
	s.mu.RLock()
	cfg, table := s.cfg, s.table
	s.mu.RUnlock()

	out := table.Transliterate(transliteration.Normalize(raw))
	if cfg.Simple {
		out = transliteration.Simplify(out)
	}
	return out
}

// nextOf wraps around; an unknown value restarts at the first entry.
func nextOf[T comparable](all []T, cur T) T {
	return all[(lo.IndexOf(all, cur)+1)%len(all)]
}
