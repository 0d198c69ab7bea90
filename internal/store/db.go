package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a SQLite-backed Store living in a named in-memory database. The
// database exists for as long as the handle is open.
type DB struct {
	*sql.DB
	name string
}

// OpenMemory opens (or joins) the shared-cache in-memory database called name.
func OpenMemory(name string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// An in-memory database is dropped when its last connection closes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{DB: db, name: name}, nil
}

// Name returns the in-memory database name.
func (db *DB) Name() string {
	return db.name
}
