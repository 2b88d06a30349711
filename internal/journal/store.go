package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Store is the pluggable event-store adapter spec.md §6 calls optional:
// "an event-store adapter (pluggable) MAY persist it but is not required
// for correctness." Mirrors ledger.Service's shape, trimmed to the one
// operation the journal actually needs downstream of the in-memory log.
type Store interface {
	Append(roomID string, rec Record)
	Close() error
}

type noopStore struct{}

func (noopStore) Append(string, Record) {}
func (noopStore) Close() error          { return nil }

// NewStoreFromEnv selects noop/sqlite/postgres the same way
// ledger.NewServiceFromEnv does: a JOURNAL_STORE env var naming the mode,
// defaulting to noop (in-memory journal only, no external persistence).
func NewStoreFromEnv() (Store, string, error) {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("JOURNAL_STORE")))
	switch mode {
	case "", "memory", "noop":
		return noopStore{}, "memory", nil
	case "sqlite":
		path := strings.TrimSpace(os.Getenv("JOURNAL_SQLITE_PATH"))
		if path == "" {
			path = "journal.db"
		}
		st, err := newSQLiteStore(path)
		if err != nil {
			return nil, "", fmt.Errorf("journal: sqlite store: %w", err)
		}
		return st, "sqlite", nil
	case "postgres":
		dsn := strings.TrimSpace(os.Getenv("JOURNAL_POSTGRES_DSN"))
		if dsn == "" {
			return nil, "", fmt.Errorf("journal: JOURNAL_POSTGRES_DSN is required for JOURNAL_STORE=postgres")
		}
		st, err := newPostgresStore(dsn)
		if err != nil {
			return nil, "", fmt.Errorf("journal: postgres store: %w", err)
		}
		return st, "postgres", nil
	default:
		return nil, "", fmt.Errorf("journal: unknown JOURNAL_STORE %q", mode)
	}
}

// sqlStore is shared by both SQL-backed adapters: same schema, same insert
// shape, different driver/DSN, mirroring ledger.PostgresService's
// single-table append-only insert pattern.
type sqlStore struct {
	db     *sql.DB
	insert string
}

func (s *sqlStore) Append(roomID string, rec Record) {
	body, err := json.Marshal(rec)
	if err != nil {
		return
	}
	// Best-effort: a failed persistence write never blocks or corrupts the
	// in-memory journal, matching spec.md §7 ("INTERNAL errors must not
	// corrupt the journal").
	_, _ = s.db.Exec(s.insert, roomID, rec.Version, body)
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
