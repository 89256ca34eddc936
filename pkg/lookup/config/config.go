// Package config reads the YAML run configuration and builds the lookup
// components it describes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/resolve"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Config is the run configuration file.
type Config struct {
	Dictionaries      []Dictionary `yaml:"dictionaries"`
	Encoders          []Encoder    `yaml:"encoders"`
	Lookup            Lookup       `yaml:"lookup"`
	Subsumption       Subsumption  `yaml:"subsumption"`
	EncodingCacheSize int          `yaml:"encoding_cache_size"`

	dir string
}

// Dictionary describes one term dictionary.
type Dictionary struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Path          string `yaml:"path"`
	Table         string `yaml:"table"`
	CaseSensitive *bool  `yaml:"case_sensitive"`
	Stem          bool   `yaml:"stem"`
	Terms         []Term `yaml:"terms"`
}

// Term is an inline dictionary row for memory dictionaries.
type Term struct {
	CUI  string `yaml:"cui"`
	Text string `yaml:"text"`
}

// Encoder describes one encoder.
type Encoder struct {
	Name  string              `yaml:"name"`
	Type  string              `yaml:"type"`
	Path  string              `yaml:"path"`
	Table string              `yaml:"table"`
	Class string              `yaml:"class"`
	Codes map[string][]string `yaml:"codes"`
}

// Lookup holds token filtering and matching settings.
type Lookup struct {
	MinSpan          int  `yaml:"min_span"`
	ConsecutiveSkips int  `yaml:"consecutive_skips"`
	TotalSkips       int  `yaml:"total_skips"`
	Parallel         bool `yaml:"parallel"`
	POS              POS  `yaml:"pos"`
}

// POS switches the part-of-speech classes allowed to match.
type POS struct {
	Verbs      bool     `yaml:"verbs"`
	Nouns      bool     `yaml:"nouns"`
	Adjectives bool     `yaml:"adjectives"`
	Adverbs    bool     `yaml:"adverbs"`
	Other      []string `yaml:"other"`
}

// Subsumption selects the resolver policy. Mode wins over the two legacy
// switches when both are present.
type Subsumption struct {
	Mode             string   `yaml:"mode"`
	Subsume          *bool    `yaml:"subsume"`
	SubsumeSemantics *bool    `yaml:"subsume_semantics"`
	Reassign         []string `yaml:"reassign"`
}

// Default returns the settings used for keys a file leaves out.
func Default() Config {
	f := token.DefaultFilterConfig()
	return Config{
		Lookup: Lookup{
			MinSpan:          f.MinSpan,
			ConsecutiveSkips: 2,
			TotalSkips:       4,
			POS: POS{
				Verbs:      f.Verbs,
				Nouns:      f.Nouns,
				Adjectives: f.Adjectives,
				Adverbs:    f.Adverbs,
			},
		},
		EncodingCacheSize: encoder.DefaultCacheSize,
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks everything that can be checked without opening resources.
func (c *Config) Validate() error {
	if len(c.Dictionaries) == 0 {
		return fmt.Errorf("no dictionaries configured: %w", internalerr.ErrInvalidConfig)
	}
	names := make(map[string]bool)
	for _, d := range c.Dictionaries {
		if d.Name == "" {
			return fmt.Errorf("dictionary without name: %w", internalerr.ErrInvalidConfig)
		}
		if names[d.Name] {
			return fmt.Errorf("dictionary %q: %w", d.Name, internalerr.ErrDuplicate)
		}
		names[d.Name] = true
		kind, err := dictionary.ParseKind(d.Type)
		if err != nil {
			return fmt.Errorf("dictionary %q: %w", d.Name, err)
		}
		if kind != dictionary.InMemory && d.Path == "" {
			return fmt.Errorf("dictionary %q: path required: %w", d.Name, internalerr.ErrInvalidConfig)
		}
	}

	names = make(map[string]bool)
	for _, e := range c.Encoders {
		if e.Name == "" {
			return fmt.Errorf("encoder without name: %w", internalerr.ErrInvalidConfig)
		}
		if names[e.Name] {
			return fmt.Errorf("encoder %q: %w", e.Name, internalerr.ErrDuplicate)
		}
		names[e.Name] = true
		kind, err := encoder.ParseKind(e.Type)
		if err != nil {
			return fmt.Errorf("encoder %q: %w", e.Name, err)
		}
		if _, err := encoder.ParseClass(e.Class); err != nil {
			return fmt.Errorf("encoder %q: %w", e.Name, err)
		}
		if kind != encoder.InMemory && e.Path == "" {
			return fmt.Errorf("encoder %q: path required: %w", e.Name, internalerr.ErrInvalidConfig)
		}
	}

	if c.Lookup.MinSpan < 0 || c.Lookup.ConsecutiveSkips < 0 || c.Lookup.TotalSkips < 0 {
		return fmt.Errorf("lookup settings must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}

// Policy resolves the subsumption settings.
func (c *Config) Policy() (resolve.Policy, error) {
	s := c.Subsumption
	if s.Mode == "" && (s.Subsume != nil || s.SubsumeSemantics != nil) {
		return resolve.PolicyFromFlags(deref(s.Subsume), deref(s.SubsumeSemantics)), nil
	}
	return resolve.ParsePolicy(s.Mode)
}

// Folding resolves the case rule of a dictionary. Stemming wins; otherwise
// dictionaries are case sensitive unless told not to be.
func (d Dictionary) Folding() dictionary.Folding {
	switch {
	case d.Stem:
		return dictionary.Stemmed
	case d.CaseSensitive == nil || *d.CaseSensitive:
		return dictionary.Cased
	default:
		return dictionary.Insensitive
	}
}

// FilterConfig converts the lookup settings.
func (l Lookup) FilterConfig() token.FilterConfig {
	return token.FilterConfig{
		MinSpan:    l.MinSpan,
		Verbs:      l.POS.Verbs,
		Nouns:      l.POS.Nouns,
		Adjectives: l.POS.Adjectives,
		Adverbs:    l.POS.Adverbs,
		Other:      l.POS.Other,
	}
}

// Resolve makes a relative path relative to the configuration file.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

func deref(b *bool) bool {
	return b != nil && *b
}
