package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/models"
)

func TestKeyDependsOnVersionAndFeatures(t *testing.T) {
	f := &models.FeatureVector{HomeElo: 1600, AwayElo: 1500}

	a, err := Key("v1", f)
	require.NoError(t, err)
	b, err := Key("v1", &models.FeatureVector{HomeElo: 1600, AwayElo: 1500})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := Key("v2", f)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	rest := 2.0
	withRest, err := Key("v1", &models.FeatureVector{HomeElo: 1600, AwayElo: 1500, HomeRestDays: &rest})
	require.NoError(t, err)
	assert.NotEqual(t, a, withRest)
}

func TestPredictionCacheDropsWritesWhenFull(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 2)

	pc.Set("a", &models.PredictionResult{GameID: "a"})
	pc.Set("b", &models.PredictionResult{GameID: "b"})
	pc.Set("c", &models.PredictionResult{GameID: "c"})

	assert.Equal(t, 2, pc.ItemCount())
	_, found := pc.Get("c")
	assert.False(t, found)

	got, found := pc.Get("a")
	require.True(t, found)
	assert.Equal(t, "a", got.GameID)

	hits, misses, ratio := pc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 0.5, ratio)
}

func TestPredictionCacheClear(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 10)
	pc.Set("a", &models.PredictionResult{})
	_, _ = pc.Get("a")

	pc.Clear()

	assert.Equal(t, 0, pc.ItemCount())
	hits, misses, ratio := pc.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, ratio)
}
