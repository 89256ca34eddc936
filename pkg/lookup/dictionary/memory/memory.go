// Package memory is the in-memory dictionary backend. First-token keys live in
// a vellum FST whose values index a slot table of entries.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"
	"github.com/rs/zerolog"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Dictionary is immutable after New and safe for concurrent reads.
type Dictionary struct {
	name    string
	kind    dictionary.Kind
	folding dictionary.Folding
	fst     *vellum.FST
	slots   [][]dictionary.Entry
	byCode  map[int64][]dictionary.Entry
	size    int
}

// Options configures New. Kind is only reported back, so file backends that
// load into memory can name themselves.
type Options struct {
	Name    string
	Folding dictionary.Folding
	Kind    dictionary.Kind
	Logger  *zerolog.Logger
}

// New indexes terms. An empty term list yields an empty dictionary and a warning.
func New(opts Options, terms []dictionary.Term) (*Dictionary, error) {
	return FromEntries(opts, dictionary.Entries(opts.Folding, terms))
}

// FromEntries indexes already folded entries.
func FromEntries(opts Options, entries []dictionary.Entry) (*Dictionary, error) {
	log := logging.Or(opts.Logger, "dictionary")
	if opts.Name == "" {
		return nil, fmt.Errorf("memory dictionary: name required: %w", internalerr.ErrInvalidConfig)
	}

	grouped := make(map[string][]dictionary.Entry)
	byCode := make(map[int64][]dictionary.Entry)
	for _, e := range entries {
		if e.Len() == 0 {
			continue
		}
		key := opts.Folding.IndexKey(e)
		grouped[key] = append(grouped[key], e)
		byCode[e.Code] = append(byCode[e.Code], e)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	// vellum requires lexicographic insertion order
	sort.Strings(keys)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("memory dictionary %s: %w", opts.Name, err)
	}
	slots := make([][]dictionary.Entry, len(keys))
	for i, k := range keys {
		if err := builder.Insert([]byte(k), uint64(i)); err != nil {
			builder.Close()
			return nil, fmt.Errorf("memory dictionary %s: insert %q: %w", opts.Name, k, err)
		}
		slots[i] = grouped[k]
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("memory dictionary %s: %w", opts.Name, err)
	}
	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("memory dictionary %s: %w", opts.Name, err)
	}

	size := 0
	for _, s := range slots {
		size += len(s)
	}
	if size == 0 {
		log.Warn().Str("dictionary", opts.Name).Msg("dictionary has no terms")
	} else {
		log.Debug().Str("dictionary", opts.Name).Int("terms", size).Int("keys", len(keys)).Msg("indexed dictionary")
	}

	return &Dictionary{
		name:    opts.Name,
		kind:    opts.Kind,
		folding: opts.Folding,
		fst:     fst,
		slots:   slots,
		byCode:  byCode,
		size:    size,
	}, nil
}

func (d *Dictionary) Name() string { return d.name }
func (d *Dictionary) Kind() dictionary.Kind { return d.kind }
func (d *Dictionary) Folding() dictionary.Folding { return d.folding }
func (d *Dictionary) Len() int { return d.size }

// Candidates implements dictionary.Dictionary.
func (d *Dictionary) Candidates(ctx context.Context, tok token.LookupToken) ([]dictionary.Entry, error) {
	var out []dictionary.Entry
	for _, key := range d.folding.QueryKeys(tok) {
		slot, ok, err := d.fst.Get([]byte(key))
		if err != nil {
			return nil, fmt.Errorf("memory dictionary %s: %w", d.name, err)
		}
		if !ok {
			continue
		}
		for _, e := range d.slots[slot] {
			if d.folding.Match(tok, e, 0) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// Entries implements dictionary.Dictionary.
func (d *Dictionary) Entries(ctx context.Context, code int64) ([]dictionary.Entry, error) {
	es := d.byCode[code]
	out := make([]dictionary.Entry, len(es))
	copy(out, es)
	return out, nil
}

// Close releases the FST.
func (d *Dictionary) Close() error {
	if d.fst == nil {
		return nil
	}
	return d.fst.Close()
}
