package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAdmin is the role name that grants mutation rights over every project.
const RoleAdmin = "admin"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// RoleRepository defines persistence operations for user roles.
type RoleRepository interface {
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
	Grant(ctx context.Context, userID int64, role string) error
	Revoke(ctx context.Context, userID int64, role string) error
}
