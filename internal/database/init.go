package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/config"
)

// RequiredTables are read or written by the repositories.
var RequiredTables = []string{
	"feature_history",
	"prediction_outcomes",
	"drift_reports",
	"book_lines",
	"platt_params",
	"settled_bets",
}

// Initialize creates a database connection pool and reports missing tables.
// Missing tables are logged, not fatal: schema management lives outside this
// service.
func Initialize(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	missing, err := db.MissingTables(ctx, RequiredTables)
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(missing) > 0 {
		logger.WithField("tables", missing).Warn("Database is missing expected tables")
	}

	return db, nil
}

// MissingTables returns the subset of tables that do not exist.
func (db *DB) MissingTables(ctx context.Context, tables []string) ([]string, error) {
	var missing []string
	for _, table := range tables {
		var exists bool
		err := db.pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
