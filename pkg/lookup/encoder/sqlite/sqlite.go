// Package sqlite reads encodings from a SQLite table (cui INTEGER, code TEXT).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options configures Open. Table defaults to the encoder name.
type Options struct {
	Name   string
	Table  string
	Class  encoder.Class
	Logger *zerolog.Logger
}

// Encoder queries per concept code through a prepared statement. Both
// *sql.DB and *sql.Stmt are safe for concurrent use.
type Encoder struct {
	name  string
	class encoder.Class
	db    *sql.DB
	stmt  *sql.Stmt
}

// Open connects to an existing encoder database.
func Open(ctx context.Context, path string, opts Options) (*Encoder, error) {
	log := logging.Or(opts.Logger, "encoder")
	table, err := tableName(opts.Table, opts.Name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("encoder %s: %w: %v", opts.Name, internalerr.ErrLoad, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("encoder %s: %w", opts.Name, err)
	}

	var found string
	err = db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&found)
	if err != nil {
		db.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("encoder %s: table %s missing: %w", opts.Name, table, internalerr.ErrLoad)
		}
		return nil, fmt.Errorf("encoder %s: %w", opts.Name, err)
	}

	var rows int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&rows); err != nil {
		db.Close()
		return nil, fmt.Errorf("encoder %s: count: %w", opts.Name, err)
	}
	if rows == 0 {
		log.Warn().Str("encoder", opts.Name).Str("table", table).Msg("encoder table is empty")
	}

	stmt, err := db.PrepareContext(ctx, `SELECT code FROM `+table+` WHERE cui = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("encoder %s: %w", opts.Name, err)
	}
	log.Info().Str("encoder", opts.Name).Str("table", table).Int("rows", rows).Msg("connected to encoder")
	return &Encoder{name: opts.Name, class: opts.Class, db: db, stmt: stmt}, nil
}

func (e *Encoder) Name() string { return e.name }

// Encodings implements encoder.Encoder.
func (e *Encoder) Encodings(ctx context.Context, code int64) ([]encoder.TermEncoding, error) {
	rows, err := e.stmt.QueryContext(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("encoder %s: %w: %v", e.name, internalerr.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("encoder %s: %w", e.name, err)
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("encoder %s: %w", e.name, err)
	}
	return encoder.Normalize(e.class.Encode(e.name, values...)), nil
}

// Close closes the statement and the connection pool.
func (e *Encoder) Close() error {
	e.stmt.Close()
	return e.db.Close()
}

// Create writes values into table at path, replacing any rows already there.
// It returns the number of rows written.
func Create(ctx context.Context, path, table string, values map[int64][]string) (int, error) {
	table, err := tableName(table, "")
	if err != nil {
		return 0, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	schema := `
CREATE TABLE IF NOT EXISTS ` + table + ` (
	cui INTEGER NOT NULL,
	code TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_` + table + `_cui ON ` + table + `(cui);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` (cui, code) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	codes := make([]int64, 0, len(values))
	for c := range values {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	n := 0
	for _, c := range codes {
		for _, v := range values[c] {
			if _, err := stmt.ExecContext(ctx, c, v); err != nil {
				return n, err
			}
			n++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func tableName(table, fallback string) (string, error) {
	if table == "" {
		table = fallback
	}
	if !identRE.MatchString(table) {
		return "", fmt.Errorf("table name %q: %w", table, internalerr.ErrInvalidConfig)
	}
	return table, nil
}
