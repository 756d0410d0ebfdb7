// Package repository provides PostgreSQL-backed persistence for the edge engine.
package repository

import (
	"fmt"

	"github.com/yourusername/clever-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Feature     FeatureRepository
	Outcome     OutcomeRepository
	DriftReport DriftReportRepository
	BookLine    BookLineRepository
	PlattParams PlattParamsRepository
	SettledBet  SettledBetRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Feature:     NewPostgresFeatureRepository(db),
		Outcome:     NewPostgresOutcomeRepository(db),
		DriftReport: NewPostgresDriftReportRepository(db),
		BookLine:    NewPostgresBookLineRepository(db),
		PlattParams: NewPostgresPlattParamsRepository(db),
		SettledBet:  NewPostgresSettledBetRepository(db),
	}, nil
}
