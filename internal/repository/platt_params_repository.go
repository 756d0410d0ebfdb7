package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

// PostgresPlattParamsRepository implements PlattParamsRepository for PostgreSQL
type PostgresPlattParamsRepository struct {
	db *database.DB
}

// NewPostgresPlattParamsRepository creates a new Platt parameters repository
func NewPostgresPlattParamsRepository(db *database.DB) PlattParamsRepository {
	return &PostgresPlattParamsRepository{db: db}
}

// Save appends a fitted parameter set; history is kept
func (r *PostgresPlattParamsRepository) Save(ctx context.Context, p *models.PlattParams) error {
	query := `
		INSERT INTO platt_params (model_version, a, b, sample_size, log_loss, fitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Querier(ctx).Exec(ctx, query, p.ModelVersion, p.A, p.B, p.SampleSize, p.LogLoss, p.FittedAt)
	if err != nil {
		return fmt.Errorf("failed to save platt params: %w", err)
	}
	return nil
}

// GetLatest returns the newest parameters for a model version
func (r *PostgresPlattParamsRepository) GetLatest(ctx context.Context, modelVersion string) (*models.PlattParams, error) {
	query := `
		SELECT model_version, a, b, sample_size, log_loss, fitted_at
		FROM platt_params
		WHERE model_version = $1
		ORDER BY fitted_at DESC
		LIMIT 1
	`

	p := &models.PlattParams{}
	err := r.db.Querier(ctx).QueryRow(ctx, query, modelVersion).Scan(
		&p.ModelVersion, &p.A, &p.B, &p.SampleSize, &p.LogLoss, &p.FittedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platt params: %w", err)
	}
	return p, nil
}
