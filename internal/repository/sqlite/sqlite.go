package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and exposes the repositories backed by it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository.
func (db *DB) Users() domain.UserRepository {
	return &userRepo{db: db.SqlDB}
}

// Roles returns the role repository.
func (db *DB) Roles() domain.RoleRepository {
	return &roleRepo{db: db.SqlDB}
}

// Projects returns the project repository.
func (db *DB) Projects() domain.ProjectRepository {
	return &projectRepo{db: db.SqlDB}
}

// Assets returns the asset metadata repository.
func (db *DB) Assets() domain.AssetRepository {
	return &assetRepo{db: db.SqlDB}
}

// FileStore returns the BLOB-backed file store.
func (db *DB) FileStore() domain.FileStore {
	return &fileStore{db: db.SqlDB}
}
