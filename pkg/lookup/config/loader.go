package config

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/termlookup/pkg/lookup"
	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	dictbsv "github.com/cognicore/termlookup/pkg/lookup/dictionary/bsv"
	dictmemory "github.com/cognicore/termlookup/pkg/lookup/dictionary/memory"
	dictsqlite "github.com/cognicore/termlookup/pkg/lookup/dictionary/sqlite"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	encbsv "github.com/cognicore/termlookup/pkg/lookup/encoder/bsv"
	encmemory "github.com/cognicore/termlookup/pkg/lookup/encoder/memory"
	encsqlite "github.com/cognicore/termlookup/pkg/lookup/encoder/sqlite"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
	"github.com/cognicore/termlookup/pkg/lookup/matcher"
	"github.com/cognicore/termlookup/pkg/lookup/resolve"
	"github.com/cognicore/termlookup/pkg/lookup/semantic"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Loader loads a configuration file and constructs components.
type Loader struct {
	ConfigPath string
	Logger     *zerolog.Logger
}

// Components holds everything an Engine needs.
type Components struct {
	Config       *Config
	Dictionaries []dictionary.Dictionary
	Encoders     *encoder.Store
	Filter       *token.Filter
	Budget       matcher.Budget
	Resolver     *resolve.Resolver
	Parallel     bool
}

// Load reads the configuration and opens every dictionary and encoder. Any
// failure is fatal and closes whatever was already opened.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg, err := Load(l.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return Build(ctx, cfg, l.Logger)
}

// Build constructs components from an already validated configuration.
func Build(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Components, error) {
	log := logging.Or(logger, "config")

	filter, err := token.NewFilter(cfg.Lookup.FilterConfig())
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	budget := matcher.Budget{
		ConsecutiveSkipMax: cfg.Lookup.ConsecutiveSkips,
		TotalSkipMax:       cfg.Lookup.TotalSkips,
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	dicts, err := loadDictionaries(ctx, cfg, &log)
	if err != nil {
		return nil, err
	}
	encoders, err := loadEncoders(ctx, cfg, &log)
	if err != nil {
		closeAll(dicts)
		return nil, err
	}
	store, err := encoder.NewStore(encoders, cfg.EncodingCacheSize, &log)
	if err != nil {
		closeAll(dicts)
		for _, e := range encoders {
			e.Close()
		}
		return nil, err
	}

	log.Info().
		Int("dictionaries", len(dicts)).
		Int("encoders", len(encoders)).
		Str("subsumption", policy.String()).
		Strs("pos", filter.PartsOfSpeech()).
		Msg("lookup components ready")

	return &Components{
		Config:       cfg,
		Dictionaries: dicts,
		Encoders:     store,
		Filter:       filter,
		Budget:       budget,
		Resolver:     resolve.New(policy, semantic.ParseReassignment(cfg.Subsumption.Reassign, &log)),
		Parallel:     cfg.Lookup.Parallel,
	}, nil
}

// Engine hands the components to a new lookup engine, which then owns them.
func (c *Components) Engine(logger *zerolog.Logger) (*lookup.Engine, error) {
	budget := c.Budget
	return lookup.New(lookup.Options{
		Dictionaries: c.Dictionaries,
		Encoders:     c.Encoders,
		Filter:       c.Filter,
		Budget:       &budget,
		Resolver:     c.Resolver,
		Parallel:     c.Parallel,
		Logger:       logger,
	})
}

// Close releases the components when no engine took ownership.
func (c *Components) Close() error {
	closeAll(c.Dictionaries)
	if c.Encoders != nil {
		return c.Encoders.Close()
	}
	return nil
}

func loadDictionaries(ctx context.Context, cfg *Config, log *zerolog.Logger) ([]dictionary.Dictionary, error) {
	dicts := make([]dictionary.Dictionary, len(cfg.Dictionaries))
	g, gctx := errgroup.WithContext(ctx)
	for i, dc := range cfg.Dictionaries {
		i, dc := i, dc
		g.Go(func() error {
			d, err := openDictionary(gctx, cfg, dc, log)
			if err != nil {
				return fmt.Errorf("dictionary %s: %w", dc.Name, err)
			}
			dicts[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		closeAll(dicts)
		return nil, err
	}
	return dicts, nil
}

func openDictionary(ctx context.Context, cfg *Config, dc Dictionary, log *zerolog.Logger) (dictionary.Dictionary, error) {
	kind, err := dictionary.ParseKind(dc.Type)
	if err != nil {
		return nil, err
	}
	opts := dictmemory.Options{Name: dc.Name, Folding: dc.Folding(), Logger: log}
	switch kind {
	case dictionary.InMemory:
		terms := make([]dictionary.Term, 0, len(dc.Terms))
		for _, t := range dc.Terms {
			code, err := dictionary.ParseCUI(t.CUI)
			if err != nil {
				return nil, err
			}
			terms = append(terms, dictionary.Term{Code: code, Text: t.Text})
		}
		return dictmemory.New(opts, terms)
	case dictionary.DelimitedFile:
		return dictbsv.Load(cfg.Resolve(dc.Path), opts)
	case dictionary.ExternalQuery:
		return dictsqlite.Open(ctx, cfg.Resolve(dc.Path), dictsqlite.Options{Name: dc.Name, Table: dc.Table, Logger: log})
	}
	return nil, fmt.Errorf("dictionary type %v: %w", kind, internalerr.ErrInvalidConfig)
}

func loadEncoders(ctx context.Context, cfg *Config, log *zerolog.Logger) ([]encoder.Encoder, error) {
	out := make([]encoder.Encoder, len(cfg.Encoders))
	g, gctx := errgroup.WithContext(ctx)
	for i, ec := range cfg.Encoders {
		i, ec := i, ec
		g.Go(func() error {
			e, err := openEncoder(gctx, cfg, ec, log)
			if err != nil {
				return fmt.Errorf("encoder %s: %w", ec.Name, err)
			}
			out[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, e := range out {
			if e != nil {
				e.Close()
			}
		}
		return nil, err
	}
	return out, nil
}

func openEncoder(ctx context.Context, cfg *Config, ec Encoder, log *zerolog.Logger) (encoder.Encoder, error) {
	kind, err := encoder.ParseKind(ec.Type)
	if err != nil {
		return nil, err
	}
	class, err := encoder.ParseClass(ec.Class)
	if err != nil {
		return nil, err
	}
	switch kind {
	case encoder.InMemory:
		values := make(map[int64][]string, len(ec.Codes))
		for cui, vs := range ec.Codes {
			code, err := dictionary.ParseCUI(cui)
			if err != nil {
				return nil, err
			}
			values[code] = append(values[code], vs...)
		}
		return encmemory.New(ec.Name, class, values), nil
	case encoder.DelimitedFile:
		return encbsv.Load(cfg.Resolve(ec.Path), ec.Name, class, log)
	case encoder.ExternalQuery:
		return encsqlite.Open(ctx, cfg.Resolve(ec.Path), encsqlite.Options{Name: ec.Name, Table: ec.Table, Class: class, Logger: log})
	}
	return nil, fmt.Errorf("encoder type %v: %w", kind, internalerr.ErrInvalidConfig)
}

func closeAll(dicts []dictionary.Dictionary) {
	for _, d := range dicts {
		if d != nil {
			d.Close()
		}
	}
}
