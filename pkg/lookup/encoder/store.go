package encoder

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
)

// DefaultCacheSize bounds the per-run encoding cache.
const DefaultCacheSize = 65536

// Store owns the configured encoders and caches their combined output by
// concept code for the life of the run.
type Store struct {
	encoders []Encoder
	cache    *lru.Cache[int64, []TermEncoding]
	log      zerolog.Logger
}

// NewStore wraps encoders in query order. cacheSize <= 0 uses DefaultCacheSize.
func NewStore(encoders []Encoder, cacheSize int, logger *zerolog.Logger) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	seen := make(map[string]bool, len(encoders))
	for _, e := range encoders {
		if seen[e.Name()] {
			return nil, fmt.Errorf("encoder %q: %w", e.Name(), internalerr.ErrDuplicate)
		}
		seen[e.Name()] = true
	}
	cache, err := lru.New[int64, []TermEncoding](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		encoders: encoders,
		cache:    cache,
		log:      logging.Or(logger, "encoder"),
	}, nil
}

// Encode returns the sorted encodings of code across all encoders. A failing
// encoder is logged and contributes nothing; such partial results are not
// cached so the next call retries. The returned slice is shared and must not
// be modified.
func (s *Store) Encode(ctx context.Context, code int64) []TermEncoding {
	if encs, ok := s.cache.Get(code); ok {
		return encs
	}
	var (
		all    []TermEncoding
		failed bool
	)
	for _, e := range s.encoders {
		encs, err := e.Encodings(ctx, code)
		if err != nil {
			failed = true
			s.log.Warn().Err(err).Str("encoder", e.Name()).Int64("code", code).Msg("encoding failed")
			continue
		}
		all = append(all, encs...)
	}
	all = Normalize(all)
	if !failed {
		s.cache.Add(code, all)
	}
	return all
}

// EncodeAll encodes each code once.
func (s *Store) EncodeAll(ctx context.Context, codes []int64) map[int64][]TermEncoding {
	out := make(map[int64][]TermEncoding, len(codes))
	for _, c := range codes {
		if _, ok := out[c]; ok {
			continue
		}
		out[c] = s.Encode(ctx, c)
	}
	return out
}

// Names lists the encoders in query order.
func (s *Store) Names() []string {
	names := make([]string, len(s.encoders))
	for i, e := range s.encoders {
		names[i] = e.Name()
	}
	return names
}

// Close closes every encoder and returns the first error.
func (s *Store) Close() error {
	var first error
	for _, e := range s.encoders {
		if err := e.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.cache.Purge()
	return first
}
