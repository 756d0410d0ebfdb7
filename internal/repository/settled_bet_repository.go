package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

// PostgresSettledBetRepository implements SettledBetRepository for PostgreSQL
type PostgresSettledBetRepository struct {
	db *database.DB
}

// NewPostgresSettledBetRepository creates a new settled bet repository
func NewPostgresSettledBetRepository(db *database.DB) SettledBetRepository {
	return &PostgresSettledBetRepository{db: db}
}

// GetSettled returns bets settled within the window in settlement order
func (r *PostgresSettledBetRepository) GetSettled(ctx context.Context, window models.TimeWindow) ([]*models.SettledBet, error) {
	query := `
		SELECT id, book, market, american_odds, stake, profit_loss, settled_at
		FROM settled_bets
		WHERE settled_at >= $1 AND settled_at < $2
		ORDER BY settled_at ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query settled bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.SettledBet
	for rows.Next() {
		b := &models.SettledBet{}
		var market string
		if err := rows.Scan(&b.ID, &b.Book, &market, &b.AmericanOdds, &b.Stake, &b.ProfitLoss, &b.SettledAt); err != nil {
			return nil, fmt.Errorf("failed to scan settled bet: %w", err)
		}
		b.Market = models.Market(market)
		bets = append(bets, b)
	}
	return bets, rows.Err()
}
