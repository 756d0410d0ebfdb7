package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

// PostgresDriftReportRepository implements DriftReportRepository for PostgreSQL
type PostgresDriftReportRepository struct {
	db *database.DB
}

// NewPostgresDriftReportRepository creates a new drift report repository
func NewPostgresDriftReportRepository(db *database.DB) DriftReportRepository {
	return &PostgresDriftReportRepository{db: db}
}

// InsertBatch stores reports in a single round trip
func (r *PostgresDriftReportRepository) InsertBatch(ctx context.Context, reports []*models.DriftReport) error {
	if len(reports) == 0 {
		return nil
	}

	query := `
		INSERT INTO drift_reports (id, feature_name, psi, threshold, is_drifted, severity, reference, current, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, rep := range reports {
		batch.Queue(query,
			rep.ID, rep.FeatureName, rep.PSI, rep.Threshold, rep.IsDrifted,
			string(rep.Severity), rep.Reference, rep.Current, rep.CheckedAt,
		)
	}

	results := r.db.Querier(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for range reports {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert drift report: %w", err)
		}
	}
	return nil
}

// GetLatest returns the most recent report for a feature
func (r *PostgresDriftReportRepository) GetLatest(ctx context.Context, feature string) (*models.DriftReport, error) {
	query := `
		SELECT id, feature_name, psi, threshold, is_drifted, severity, reference, current, checked_at
		FROM drift_reports
		WHERE feature_name = $1
		ORDER BY checked_at DESC
		LIMIT 1
	`

	rep := &models.DriftReport{}
	var severity string
	err := r.db.Querier(ctx).QueryRow(ctx, query, feature).Scan(
		&rep.ID, &rep.FeatureName, &rep.PSI, &rep.Threshold, &rep.IsDrifted,
		&severity, &rep.Reference, &rep.Current, &rep.CheckedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get drift report: %w", err)
	}
	rep.Severity = models.DriftSeverity(severity)
	return rep, nil
}
