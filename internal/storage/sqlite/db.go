package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/dferreira/folio-backend/internal/domain"
)

// DB wraps the database handle shared by all repositories. database/sql
// scopes connection acquisition per statement and releases it on every exit
// path, so repositories never manage connections themselves.
type DB struct {
	*sql.DB
}

// Open opens the SQLite database at path, creating the file if absent.
// Foreign keys are switched on for every connection; the schema declares
// them and the engine enforces them.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database handle
func (db *DB) Close() error {
	return db.DB.Close()
}

// constraintErr translates engine constraint failures into domain.ErrConstraint
// so callers can tell "you violated a rule" from "the operation broke".
func constraintErr(err error, msg string) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w", msg, domain.ErrConstraint)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
