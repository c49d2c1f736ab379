package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comissoes/internal/core"
)

// CreateUser inserts a new user and fills in its ID. The name column
// carries a case-insensitive unique constraint, so a concurrent
// duplicate registration fails here even after the handler's check.
func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, password_hash) VALUES (?, ?)`,
		u.Name, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user insert id: %w", err)
	}
	u.ID = id
	return nil
}

// GetUserByName looks a user up by display name, case-insensitively.
func (s *Store) GetUserByName(ctx context.Context, name string) (*core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM users WHERE name = ? COLLATE NOCASE`,
		name)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if n == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

// ListUsers returns every account ordered by name. Admin view only.
func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, password_hash FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row *sql.Row) (*core.User, error) {
	var u core.User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
