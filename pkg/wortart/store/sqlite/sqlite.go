package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	// One writer connection; concurrent callers queue in database/sql
	// instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS lexicon_words (
	word TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	rule TEXT,
	added_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS classifications (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL,
	token_key TEXT NOT NULL,
	sentence TEXT,
	type TEXT NOT NULL,
	rule TEXT NOT NULL,
	confidence REAL,
	result_json TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_classifications_token ON classifications(token_key, id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertWord inserts or replaces a lexicon entry.
func (s *sqliteStore) UpsertWord(ctx context.Context, w store.Word) error {
	w, err := store.ValidateWord(w)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO lexicon_words(word, type, rule, added_at) VALUES(?, ?, ?, ?)
ON CONFLICT(word) DO UPDATE SET type=excluded.type, rule=excluded.rule, added_at=excluded.added_at`,
		w.Word, w.Type.String(), w.Rule, w.AddedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert word %q: %w", w.Word, err)
	}
	return nil
}

// GetWord returns the entry for word.
func (s *sqliteStore) GetWord(ctx context.Context, word string) (store.Word, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT word, type, rule, added_at FROM lexicon_words WHERE word = ?`, store.NormalizeWord(word))
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Word{}, false, nil
	}
	if err != nil {
		return store.Word{}, false, err
	}
	return w, true, nil
}

// DeleteWord removes the entry for word.
func (s *sqliteStore) DeleteWord(ctx context.Context, word string) error {
	key := store.NormalizeWord(word)
	res, err := s.db.ExecContext(ctx, `DELETE FROM lexicon_words WHERE word = ?`, key)
	if err != nil {
		return fmt.Errorf("delete word %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("word %q: %w", key, internalerr.ErrNotFound)
	}
	return nil
}

// Words returns all entries sorted by word.
func (s *sqliteStore) Words(ctx context.Context) ([]store.Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, type, rule, added_at FROM lexicon_words ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWord(sc scanner) (store.Word, error) {
	var (
		w       store.Word
		typ     string
		rule    sql.NullString
		addedAt string
	)
	if err := sc.Scan(&w.Word, &typ, &rule, &addedAt); err != nil {
		return store.Word{}, err
	}
	t, ok := wordtype.Parse(typ)
	if !ok {
		return store.Word{}, fmt.Errorf("word %q: stored type %q: %w", w.Word, typ, internalerr.ErrInvalidInput)
	}
	w.Type = t
	w.Rule = rule.String
	w.AddedAt = parseTime(addedAt)
	return w, nil
}

// RecordClassification appends c to the history.
func (s *sqliteStore) RecordClassification(ctx context.Context, c store.Classification) error {
	if err := store.ValidateClassification(c); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO classifications(id, token, token_key, sentence, type, rule, confidence, result_json, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Token, store.NormalizeWord(c.Token), c.Sentence, c.Type.String(), c.Rule,
		c.Confidence, c.ResultJSON, c.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record classification %s: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("classification %s: %w", c.ID, internalerr.ErrDuplicate)
	}
	return nil
}

// Classifications returns matching history entries, newest first.
func (s *sqliteStore) Classifications(ctx context.Context, q store.HistoryQuery) ([]store.Classification, error) {
	query := `SELECT id, token, sentence, type, rule, confidence, result_json, created_at FROM classifications`
	var args []any
	if token := store.NormalizeWord(q.Token); token != "" {
		query += ` WHERE token_key = ?`
		args = append(args, token)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, q.EffectiveLimit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Classification
	for rows.Next() {
		var (
			c          store.Classification
			typ        string
			sentence   sql.NullString
			confidence sql.NullFloat64
			resultJSON sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&c.ID, &c.Token, &sentence, &typ, &c.Rule, &confidence, &resultJSON, &createdAt); err != nil {
			return nil, err
		}
		t, ok := wordtype.Parse(typ)
		if !ok {
			return nil, fmt.Errorf("classification %s: stored type %q: %w", c.ID, typ, internalerr.ErrInvalidInput)
		}
		c.Type = t
		c.Sentence = sentence.String
		c.Confidence = confidence.Float64
		c.ResultJSON = resultJSON.String
		c.CreatedAt = parseTime(createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
