// Package db is the registry's SQLite store: proteins, their precomputed correlations, and
// the statistics derived from them.
package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var ErrProteinNotFound = errors.New("protein not found")

// Repository holds the registry connection. Its methods are split across the *_repo.go files.
type Repository struct {
	dbConn *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{dbConn: db}
}

func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing repo: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (repo *Repository) Ping() error {
	return repo.dbConn.Ping()
}

// New opens the SQLite file at path and applies pending migrations.
func New(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_journal=WAL&_timeout=5000&_fk=true", path))
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	// One writer; imports and correlation replacement run in long transactions.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration: %w", err)
	}
	return db, nil
}
