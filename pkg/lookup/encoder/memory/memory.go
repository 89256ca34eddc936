// Package memory holds encodings in a map.
package memory

import (
	"context"

	"github.com/cognicore/termlookup/pkg/lookup/encoder"
)

// Encoder is immutable after New.
type Encoder struct {
	name  string
	codes map[int64][]encoder.TermEncoding
}

// New encodes the raw values of every concept under class.
func New(name string, class encoder.Class, values map[int64][]string) *Encoder {
	codes := make(map[int64][]encoder.TermEncoding, len(values))
	for code, vs := range values {
		if encs := encoder.Normalize(class.Encode(name, vs...)); len(encs) > 0 {
			codes[code] = encs
		}
	}
	return &Encoder{name: name, codes: codes}
}

func (e *Encoder) Name() string { return e.name }

// Len is the number of concepts with at least one encoding.
func (e *Encoder) Len() int { return len(e.codes) }

// Encodings returns a copy of the encodings of code.
func (e *Encoder) Encodings(ctx context.Context, code int64) ([]encoder.TermEncoding, error) {
	encs := e.codes[code]
	if len(encs) == 0 {
		return nil, nil
	}
	out := make([]encoder.TermEncoding, len(encs))
	copy(out, encs)
	return out, nil
}

func (e *Encoder) Close() error { return nil }
