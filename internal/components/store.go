package components

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS component (
	id          TEXT PRIMARY KEY,
	listener_id TEXT,
	kind        INTEGER,
	expire_date INTEGER,
	arguments   TEXT NOT NULL DEFAULT ''
);`

// Store persists component correlation records in SQLite. Every operation is a
// single self-contained statement; the store needs no locking beyond what the
// driver provides.
type Store struct {
	db *sql.DB
}

// Open opens the component store at the given path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("component store path is required")
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open component store: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping component store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure component table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateID inserts a new correlation record and returns its generated ID. The
// ID is what callers should use as the element's custom ID. Insert failures
// propagate: without the ID the caller cannot build the component anyway.
func (s *Store) CreateID(ctx context.Context, listener string, kind int, expireAt *time.Time, args ...string) (string, error) {
	if listener == "" {
		return "", fmt.Errorf("component listener is required")
	}

	id := uuid.NewString()

	var expire sql.NullInt64
	if expireAt != nil {
		expire = sql.NullInt64{Int64: expireAt.UTC().UnixMilli(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO component (id, listener_id, kind, expire_date, arguments)
		 VALUES (?, ?, ?, ?, ?)`,
		id, listener, kind, expire, encodeArguments(args))
	if err != nil {
		return "", fmt.Errorf("insert component %s: %w", listener, err)
	}
	return id, nil
}

// Retrieve looks up a record by ID. A missing row or a storage failure yields
// the empty entity, never an error: Discord constructs callbacks for any ID it
// has ever handed out, and the row may legitimately be gone already.
func (s *Store) Retrieve(ctx context.Context, id string) Entity {
	row := s.db.QueryRowContext(ctx,
		`SELECT listener_id, kind, expire_date, arguments FROM component WHERE id = ?`, id)

	var (
		listener sql.NullString
		kind     sql.NullInt64
		expire   sql.NullInt64
		rawArgs  string
	)
	if err := row.Scan(&listener, &kind, &expire, &rawArgs); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[ERR] Failed to retrieve component %s: %v", id, err)
		}
		return Empty(id)
	}

	e := Entity{
		ID:         id,
		ListenerID: listener.String,
		Kind:       int(kind.Int64),
		Arguments:  decodeArguments(rawArgs),
	}
	if expire.Valid {
		t := time.UnixMilli(expire.Int64).UTC()
		e.ExpireAt = &t
	}
	return e
}

// Remove deletes a record by ID. Removing an absent row is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM component WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete component %s: %w", id, err)
	}
	return nil
}
