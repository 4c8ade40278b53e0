package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, password_hash, role, created_at, last_login`

func (r *PostgresRepo) getUser(ctx context.Context, where string, arg any) (*StaffUser, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1`

	var u StaffUser
	err := r.conn(ctx).QueryRow(ctx, sql, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (*StaffUser, error) {
	return r.getUser(ctx, "username", username)
}

func (r *PostgresRepo) GetUserByID(ctx context.Context, id int64) (*StaffUser, error) {
	return r.getUser(ctx, "id", id)
}

func (r *PostgresRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

func (r *PostgresRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

func (r *PostgresRepo) EnsureUser(ctx context.Context, u *StaffUser) (bool, error) {
	const sql = `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`

	err := r.conn(ctx).QueryRow(ctx, sql, u.Username, u.PasswordHash, u.Role, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert user: %w", err)
	}
	return true, nil
}
