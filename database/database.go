package database

import (
	"context"

	"gorm.io/gorm"
)

// Database bundles the repositories over a shared GORM handle. Rebuilding it
// over a transaction handle (see Transaction) gives every repository the same
// request-scoped unit of work.
type Database struct {
	db          *gorm.DB
	projectRepo *ProjectRepo
}

// New initializes a Database with each repository sharing the given GORM instance.
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		projectRepo: NewProjectRepo(db),
	}
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

// Transaction runs fn inside a single transaction scoped to ctx. The
// transaction commits when fn returns nil and rolls back on any error or
// panic, so no partial mutation is ever visible.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping verifies the connection is usable before the server starts.
func (d Database) Ping() error {
	var result int
	return d.db.Raw("SELECT 1").Scan(&result).Error
}
