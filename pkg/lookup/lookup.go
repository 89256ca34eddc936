// Package lookup finds dictionary terms in tokenized sentences and resolves
// them into annotations.
package lookup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
	"github.com/cognicore/termlookup/pkg/lookup/matcher"
	"github.com/cognicore/termlookup/pkg/lookup/resolve"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Engine is the lookup facade. It owns its dictionaries and encoders.
type Engine struct {
	dicts    []dictionary.Dictionary
	store    *encoder.Store
	filter   *token.Filter
	budget   matcher.Budget
	resolver *resolve.Resolver
	matcher  *matcher.Matcher
	parallel bool
	log      zerolog.Logger
}

// Options configures an Engine. Only Dictionaries is required.
type Options struct {
	Dictionaries []dictionary.Dictionary
	Encoders     *encoder.Store    // nil attaches no encodings
	Filter       *token.Filter     // nil uses token.DefaultFilterConfig
	Budget       *matcher.Budget   // nil uses matcher.DefaultBudget
	Resolver     *resolve.Resolver // nil uses semantic subsumption
	Parallel     bool              // match dictionaries concurrently
	Logger       *zerolog.Logger
}

// New validates opts and builds an Engine.
func New(opts Options) (*Engine, error) {
	if len(opts.Dictionaries) == 0 {
		return nil, fmt.Errorf("lookup: no dictionaries: %w", internalerr.ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(opts.Dictionaries))
	for _, d := range opts.Dictionaries {
		if seen[d.Name()] {
			return nil, fmt.Errorf("lookup: dictionary %q: %w", d.Name(), internalerr.ErrDuplicate)
		}
		seen[d.Name()] = true
	}

	filter := opts.Filter
	if filter == nil {
		f, err := token.NewFilter(token.DefaultFilterConfig())
		if err != nil {
			return nil, err
		}
		filter = f
	}
	budget := matcher.DefaultBudget()
	if opts.Budget != nil {
		budget = *opts.Budget
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = resolve.New(resolve.Semantic, nil)
	}
	log := logging.Or(opts.Logger, "lookup")

	return &Engine{
		dicts:    opts.Dictionaries,
		store:    opts.Encoders,
		filter:   filter,
		budget:   budget,
		resolver: resolver,
		matcher:  matcher.New(&log),
		parallel: opts.Parallel,
		log:      log,
	}, nil
}

// Close releases dictionaries and encoders, returning the first error.
func (e *Engine) Close() error {
	var first error
	for _, d := range e.dicts {
		if err := d.Close(); err != nil && first == nil {
			first = err
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Dictionary returns the dictionary registered under name.
func (e *Engine) Dictionary(name string) (dictionary.Dictionary, bool) {
	for _, d := range e.dicts {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// Dictionaries returns the registered dictionaries in configuration order.
func (e *Engine) Dictionaries() []dictionary.Dictionary {
	return append([]dictionary.Dictionary(nil), e.dicts...)
}

// Encode returns the encodings of code, or nil when no encoders are attached.
func (e *Engine) Encode(ctx context.Context, code int64) []encoder.TermEncoding {
	if e.store == nil {
		return nil
	}
	return e.store.Encode(ctx, code)
}

// FindTerms matches one sentence's tokens against every dictionary and
// merges the results by span. Parallel and sequential runs give the same map.
func (e *Engine) FindTerms(ctx context.Context, tokens []token.BaseToken) (matcher.TermMap, error) {
	lookupTokens := token.Build(e.filter, tokens)
	results := make([]matcher.TermMap, len(e.dicts))

	if !e.parallel || len(e.dicts) == 1 {
		for i, d := range e.dicts {
			i, d := i, d
			results[i] = e.matcher.FindTerms(ctx, d, lookupTokens, e.budget)
		}
		return matcher.Merge(results...), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range e.dicts {
		i, d := i, d
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("dictionary %s: %v", d.Name(), r)
				}
			}()
			results[i] = e.matcher.FindTerms(gctx, d, lookupTokens, e.budget)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matcher.Merge(results...), nil
}

// Annotate finds, encodes and resolves the terms of one sentence.
func (e *Engine) Annotate(ctx context.Context, s Sentence) ([]resolve.Annotation, error) {
	tm, err := e.FindTerms(ctx, s.Tokens)
	if err != nil {
		return nil, err
	}
	var encodings map[int64][]encoder.TermEncoding
	if e.store != nil {
		encodings = e.store.EncodeAll(ctx, tm.Codes())
	}
	return e.resolver.Resolve(tm, encodings), nil
}
