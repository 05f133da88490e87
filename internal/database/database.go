package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Pinger is the minimal health surface the readiness probe needs
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Open opens the local sqlite store at path (":memory:" for tests) and
// verifies connectivity. The pool is capped at one connection: sqlite is
// a single-writer store and one connection also keeps every statement of
// an in-memory test database on the same underlying database.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, DefaultBusyTimeoutMillis)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenStore, err)
	}

	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingStore, err)
	}

	slog.Default().Info(LogMsgConnectedToStore, "path", path)
	return db, nil
}
