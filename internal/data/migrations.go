package data

import (
	"context"
	"database/sql"

	"github.com/layerpeek/layerpeek/internal/migrate"
)

// RunMigrations sets up the job schema by delegating to the migrate package.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
