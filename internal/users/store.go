// Package users is the relational example: it creates a users table, inserts
// rows and reads them back, acquiring a fresh connection for every operation.
package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// User is one row of the users table.
type User struct {
	ID    int    `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL
	)`

	insertSQL = `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`

	listSQL = `SELECT id, name, email FROM users ORDER BY id`
)

// ConnectionProvider runs fn with a connection it acquires and releases.
// *db.Acquirer satisfies it.
type ConnectionProvider interface {
	WithConnection(ctx context.Context, fn func(conn stackprobe.Conn) error) error
}

// Store runs the users table operations.
type Store struct {
	provider ConnectionProvider
}

// NewStore creates a Store over provider.
func NewStore(provider ConnectionProvider) *Store {
	return &Store{provider: provider}
}

// CreateTable creates the users table if it is absent.
func (s *Store) CreateTable(ctx context.Context) error {
	return s.provider.WithConnection(ctx, func(conn stackprobe.Conn) error {
		if _, err := conn.Exec(ctx, createTableSQL); err != nil {
			return fmt.Errorf("create users table: %w", err)
		}
		return nil
	})
}

// Insert adds a user and returns the generated id.
func (s *Store) Insert(ctx context.Context, name, email string) (int, error) {
	var id int
	err := s.provider.WithConnection(ctx, func(conn stackprobe.Conn) error {
		if err := conn.QueryRow(ctx, insertSQL, name, email).Scan(&id); err != nil {
			return fmt.Errorf("insert user %q: %w", email, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns every user ordered by id.
func (s *Store) List(ctx context.Context) ([]User, error) {
	var users []User
	err := s.provider.WithConnection(ctx, func(conn stackprobe.Conn) error {
		rows, err := conn.Query(ctx, listSQL)
		if err != nil {
			return fmt.Errorf("query users: %w", err)
		}
		users, err = pgx.CollectRows(rows, pgx.RowToStructByName[User])
		if err != nil {
			return fmt.Errorf("read users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
