// Package sqlite is the external-query dictionary backend. Terms live in a
// SQLite table keyed by the folded form of their first token.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// DefaultTable is used when Options.Table is empty.
const DefaultTable = "terms"

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options configures Open.
type Options struct {
	Name   string
	Table  string
	Logger *zerolog.Logger
}

// Dictionary queries the database for every lookup. *sql.DB is a pool and the
// prepared statements are safe for concurrent use.
type Dictionary struct {
	name    string
	table   string
	folding dictionary.Folding
	db      *sql.DB
	byKey   *sql.Stmt
	byCode  *sql.Stmt
	size    int
}

// Open connects to an existing dictionary database. The case folding is read
// from the database, since index keys were computed with it.
func Open(ctx context.Context, path string, opts Options) (*Dictionary, error) {
	log := logging.Or(opts.Logger, "dictionary")
	table, err := tableName(opts.Table)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dictionary %s: %w: %v", opts.Name, internalerr.ErrLoad, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", opts.Name, err)
	}
	d := &Dictionary{name: opts.Name, table: table, db: db}
	if err := d.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if d.size == 0 {
		log.Warn().Str("dictionary", d.name).Str("table", table).Msg("dictionary table is empty")
	} else {
		log.Info().Str("dictionary", d.name).Str("table", table).Int("terms", d.size).Msg("connected to dictionary")
	}
	return d, nil
}

func (d *Dictionary) init(ctx context.Context) error {
	var found string
	err := d.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, d.table).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("dictionary %s: table %s missing: %w", d.name, d.table, internalerr.ErrLoad)
	}
	if err != nil {
		return fmt.Errorf("dictionary %s: %w", d.name, err)
	}

	folding, err := readFolding(ctx, d.db, d.table)
	if err != nil {
		return fmt.Errorf("dictionary %s: %w", d.name, err)
	}
	d.folding = folding

	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+d.table).Scan(&d.size); err != nil {
		return fmt.Errorf("dictionary %s: count: %w", d.name, err)
	}

	if d.byKey, err = d.db.PrepareContext(ctx,
		`SELECT cui, tokens FROM `+d.table+` WHERE index_word = ? ORDER BY cui, tokens`); err != nil {
		return fmt.Errorf("dictionary %s: %w", d.name, err)
	}
	if d.byCode, err = d.db.PrepareContext(ctx,
		`SELECT cui, tokens FROM `+d.table+` WHERE cui = ? ORDER BY tokens`); err != nil {
		return fmt.Errorf("dictionary %s: %w", d.name, err)
	}
	return nil
}

func readFolding(ctx context.Context, db *sql.DB, table string) (dictionary.Folding, error) {
	// databases without a meta row were built with the cased rule
	var n int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'dictionary_meta'`).Scan(&n); err != nil {
		return 0, err
	}
	if n == 0 {
		return dictionary.Cased, nil
	}
	var name string
	err := db.QueryRowContext(ctx, `SELECT folding FROM dictionary_meta WHERE tbl = ?`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return dictionary.Cased, nil
	}
	if err != nil {
		return 0, err
	}
	return dictionary.ParseFolding(name)
}

func (d *Dictionary) Name() string { return d.name }
func (d *Dictionary) Kind() dictionary.Kind { return dictionary.ExternalQuery }
func (d *Dictionary) Folding() dictionary.Folding { return d.folding }
func (d *Dictionary) Len() int { return d.size }

// Candidates implements dictionary.Dictionary.
func (d *Dictionary) Candidates(ctx context.Context, tok token.LookupToken) ([]dictionary.Entry, error) {
	var out []dictionary.Entry
	for _, key := range d.folding.QueryKeys(tok) {
		es, err := d.query(ctx, d.byKey, key)
		if err != nil {
			return nil, err
		}
		for _, e := range es {
			if d.folding.Match(tok, e, 0) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// Entries implements dictionary.Dictionary.
func (d *Dictionary) Entries(ctx context.Context, code int64) ([]dictionary.Entry, error) {
	return d.query(ctx, d.byCode, code)
}

func (d *Dictionary) query(ctx context.Context, stmt *sql.Stmt, arg any) ([]dictionary.Entry, error) {
	rows, err := stmt.QueryContext(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w: %v", d.name, internalerr.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []dictionary.Entry
	for rows.Next() {
		var (
			code   int64
			tokens string
		)
		if err := rows.Scan(&code, &tokens); err != nil {
			return nil, fmt.Errorf("dictionary %s: %w", d.name, err)
		}
		toks := strings.Fields(tokens)
		if len(toks) == 0 {
			continue
		}
		out = append(out, d.folding.NewEntry(code, toks))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", d.name, err)
	}
	return out, nil
}

// Close closes the statements and the connection pool.
func (d *Dictionary) Close() error {
	if d.byKey != nil {
		d.byKey.Close()
	}
	if d.byCode != nil {
		d.byCode.Close()
	}
	return d.db.Close()
}

func tableName(t string) (string, error) {
	if t == "" {
		return DefaultTable, nil
	}
	if !identRE.MatchString(t) {
		return "", fmt.Errorf("table name %q: %w", t, internalerr.ErrInvalidConfig)
	}
	return t, nil
}
