package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

var bookLineColumns = []string{
	"id", "game_id", "book", "captured_at",
	"ml_home", "ml_away", "ml_draw",
	"spread_value", "spread_home_odds", "spread_away_odds",
	"total_value", "total_over_odds", "total_under_odds",
}

// PostgresBookLineRepository implements BookLineRepository for PostgreSQL.
// Each market is stored as nullable columns on one row per snapshot.
type PostgresBookLineRepository struct {
	db *database.DB
}

// NewPostgresBookLineRepository creates a new book line repository
func NewPostgresBookLineRepository(db *database.DB) BookLineRepository {
	return &PostgresBookLineRepository{db: db}
}

// InsertBatch bulk-loads snapshots with COPY
func (r *PostgresBookLineRepository) InsertBatch(ctx context.Context, lines []*models.BookLine) error {
	if len(lines) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(lines))
	for i, l := range lines {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		rows[i] = bookLineRow(l)
	}

	count, err := r.db.Querier(ctx).CopyFrom(ctx, pgx.Identifier{"book_lines"}, bookLineColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert book lines: %w", err)
	}
	if count != int64(len(lines)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(lines))
	}
	return nil
}

// GetLatestByGame returns the newest snapshot per book for a game
func (r *PostgresBookLineRepository) GetLatestByGame(ctx context.Context, gameID string) ([]*models.BookLine, error) {
	query := `
		SELECT DISTINCT ON (book)
			id, game_id, book, captured_at,
			ml_home, ml_away, ml_draw,
			spread_value, spread_home_odds, spread_away_odds,
			total_value, total_over_odds, total_under_odds
		FROM book_lines
		WHERE game_id = $1
		ORDER BY book, captured_at DESC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query book lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.BookLine
	for rows.Next() {
		line, err := scanBookLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func bookLineRow(l *models.BookLine) []interface{} {
	var mlHome, mlAway, mlDraw, spreadHome, spreadAway, over, under *int
	var spreadValue, totalValue *float64

	if ml := l.Moneyline; ml != nil {
		mlHome, mlAway, mlDraw = &ml.Home, &ml.Away, ml.Draw
	}
	if s := l.Spread; s != nil {
		spreadValue, spreadHome, spreadAway = &s.Value, &s.HomeOdds, &s.AwayOdds
	}
	if t := l.Total; t != nil {
		totalValue, over, under = &t.Value, &t.OverOdds, &t.UnderOdds
	}

	return []interface{}{
		l.ID, l.GameID, l.Book, l.Timestamp,
		mlHome, mlAway, mlDraw,
		spreadValue, spreadHome, spreadAway,
		totalValue, over, under,
	}
}

func scanBookLine(rows pgx.Rows) (*models.BookLine, error) {
	var (
		line                   models.BookLine
		capturedAt             time.Time
		mlHome, mlAway, mlDraw *int
		spreadValue            *float64
		spreadHome, spreadAway *int
		totalValue             *float64
		over, under            *int
	)

	err := rows.Scan(
		&line.ID, &line.GameID, &line.Book, &capturedAt,
		&mlHome, &mlAway, &mlDraw,
		&spreadValue, &spreadHome, &spreadAway,
		&totalValue, &over, &under,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan book line: %w", err)
	}
	line.Timestamp = capturedAt

	if mlHome != nil && mlAway != nil {
		line.Moneyline = &models.Moneyline{Home: *mlHome, Away: *mlAway, Draw: mlDraw}
	}
	if spreadValue != nil && spreadHome != nil && spreadAway != nil {
		line.Spread = &models.Spread{Value: *spreadValue, HomeOdds: *spreadHome, AwayOdds: *spreadAway}
	}
	if totalValue != nil && over != nil && under != nil {
		line.Total = &models.Total{Value: *totalValue, OverOdds: *over, UnderOdds: *under}
	}
	return &line, nil
}
