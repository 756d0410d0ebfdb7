package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

// PostgresOutcomeRepository implements OutcomeRepository for PostgreSQL
type PostgresOutcomeRepository struct {
	db *database.DB
}

// NewPostgresOutcomeRepository creates a new outcome repository
func NewPostgresOutcomeRepository(db *database.DB) OutcomeRepository {
	return &PostgresOutcomeRepository{db: db}
}

// Record upserts the outcome of one game for one model version
func (r *PostgresOutcomeRepository) Record(ctx context.Context, o *models.PredictionOutcome) error {
	query := `
		INSERT INTO prediction_outcomes (game_id, model_version, predicted_prob, outcome, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, model_version)
		DO UPDATE SET predicted_prob = EXCLUDED.predicted_prob, outcome = EXCLUDED.outcome, recorded_at = EXCLUDED.recorded_at
	`

	_, err := r.db.Querier(ctx).Exec(ctx, query, o.GameID, o.ModelVersion, o.Predicted, o.Outcome, o.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// GetSince returns outcomes for a model version recorded at or after since
func (r *PostgresOutcomeRepository) GetSince(ctx context.Context, modelVersion string, since time.Time) ([]*models.PredictionOutcome, error) {
	query := `
		SELECT game_id, model_version, predicted_prob, outcome, recorded_at
		FROM prediction_outcomes
		WHERE model_version = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, modelVersion, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*models.PredictionOutcome
	for rows.Next() {
		o := &models.PredictionOutcome{}
		if err := rows.Scan(&o.GameID, &o.ModelVersion, &o.Predicted, &o.Outcome, &o.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
