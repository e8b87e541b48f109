package storage

import (
	"fmt"

	"boards/internal/domain"
)

// OpenLibrary selects a board library backend by name. "sqlite" (the default)
// reuses the already-open local database; "postgres", "mysql", and "mongo"
// open a shared library at dsn. The returned func closes whatever OpenLibrary
// opened; for sqlite it is a no-op since the caller owns db.
func OpenLibrary(db *DB, backend, dsn, database string) (domain.BoardStore, func() error, error) {
	switch backend {
	case "", "sqlite":
		return NewBoardStore(db), func() error { return nil }, nil
	case "postgres", "mysql":
		if dsn == "" {
			return nil, nil, fmt.Errorf("%s library requires a connection string", backend)
		}
		s, err := OpenRemoteDSN(backend, dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mongo":
		if dsn == "" {
			return nil, nil, fmt.Errorf("mongo library requires a connection string")
		}
		s, err := OpenMongo(dsn, database)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown library backend %q", backend)
	}
}
