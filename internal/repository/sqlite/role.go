package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// roleRepo implements domain.RoleRepository using SQLite.
type roleRepo struct {
	db *sql.DB
}

func (r *roleRepo) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = ? AND role = ?)",
		userID, role,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query user role: %w", err)
	}
	return exists == 1, nil
}

func (r *roleRepo) Grant(ctx context.Context, userID int64, role string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO user_roles (user_id, role) VALUES (?, ?)",
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

func (r *roleRepo) Revoke(ctx context.Context, userID int64, role string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM user_roles WHERE user_id = ? AND role = ?",
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}
