package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
)

// Create writes terms into table at path, creating the database and schema as
// needed. An existing table is emptied first, so a rebuild replaces both the
// rows and the stored folding. It returns the number of rows written.
func Create(ctx context.Context, path, table string, folding dictionary.Folding, terms []dictionary.Term) (int, error) {
	table, err := tableName(table)
	if err != nil {
		return 0, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return 0, err
	}
	if err := initSchema(ctx, db, table); err != nil {
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
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO dictionary_meta (tbl, folding) VALUES (?, ?)`, table, folding.String()); err != nil {
		return 0, fmt.Errorf("write meta: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` (cui, index_word, tokens) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for _, e := range dictionary.Entries(folding, terms) {
		if _, err := stmt.ExecContext(ctx, e.Code, folding.IndexKey(e), e.Text()); err != nil {
			return n, fmt.Errorf("insert %s: %w", dictionary.FormatCUI(e.Code), err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func initSchema(ctx context.Context, db *sql.DB, table string) error {
	schema := `
CREATE TABLE IF NOT EXISTS dictionary_meta (
	tbl TEXT PRIMARY KEY,
	folding TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ` + table + ` (
	cui INTEGER NOT NULL,
	index_word TEXT NOT NULL,
	tokens TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_` + table + `_index_word ON ` + table + `(index_word);
CREATE INDEX IF NOT EXISTS idx_` + table + `_cui ON ` + table + `(cui);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
