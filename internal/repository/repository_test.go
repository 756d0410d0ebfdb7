package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/models"
)

func intPtr(v int) *int { return &v }

func TestBookLineRowNullsAbsentMarkets(t *testing.T) {
	line := &models.BookLine{
		ID:        uuid.New(),
		GameID:    "game-1",
		Book:      "A",
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Moneyline: &models.Moneyline{Home: -135, Away: 115, Draw: intPtr(250)},
	}

	row := bookLineRow(line)
	require.Len(t, row, len(bookLineColumns))
	assert.Equal(t, -135, *row[4].(*int))
	assert.Equal(t, 250, *row[6].(*int))
	assert.Nil(t, row[7].(*float64))
	assert.Nil(t, row[10].(*float64))
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

func TestBookLineRoundTripIntegration(t *testing.T) {
	db := database.SetupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gameID := "it-" + uuid.NewString()
	lines := []*models.BookLine{
		{GameID: gameID, Book: "A", Timestamp: time.Now().UTC(), Spread: &models.Spread{Value: -3.5, HomeOdds: -110, AwayOdds: -110}},
		{GameID: gameID, Book: "B", Timestamp: time.Now().UTC(), Total: &models.Total{Value: 47.5, OverOdds: -105, UnderOdds: -115}},
	}
	require.NoError(t, repos.BookLine.InsertBatch(ctx, lines))

	got, err := repos.BookLine.GetLatestByGame(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Book)
	assert.NotNil(t, got[0].Spread)
	assert.Nil(t, got[0].Total)
}

func TestPlattParamsNotFoundIntegration(t *testing.T) {
	db := database.SetupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)

	_, err = repos.PlattParams.GetLatest(context.Background(), "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
