package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

// PostgresFeatureRepository implements FeatureRepository for PostgreSQL
type PostgresFeatureRepository struct {
	db *database.DB
}

// NewPostgresFeatureRepository creates a new feature repository
func NewPostgresFeatureRepository(db *database.DB) FeatureRepository {
	return &PostgresFeatureRepository{db: db}
}

// ListFeatures returns the distinct feature names with history
func (r *PostgresFeatureRepository) ListFeatures(ctx context.Context) ([]string, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `SELECT DISTINCT feature_name FROM feature_history ORDER BY feature_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan feature name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetSamples returns the feature's non-null values observed in [start, end)
func (r *PostgresFeatureRepository) GetSamples(ctx context.Context, feature string, window models.TimeWindow) ([]float64, error) {
	query := `
		SELECT value
		FROM feature_history
		WHERE feature_name = $1 AND observed_at >= $2 AND observed_at < $3 AND value IS NOT NULL
		ORDER BY observed_at ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, feature, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples for %s: %w", feature, err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
