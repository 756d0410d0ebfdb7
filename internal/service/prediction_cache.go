package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/clever-edge/internal/metrics"
	"github.com/yourusername/clever-edge/internal/models"
)

// PredictionCache memoises ensemble predictions keyed by model version and
// the exact feature vector.
type PredictionCache struct {
	cache   *cache.Cache
	ttl     time.Duration
	maxSize int
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Key derives the cache key for a feature vector under a model version.
func Key(modelVersion string, f *models.FeatureVector) (string, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	sum := sha256.Sum256(append([]byte(modelVersion+"|"), payload...))
	return hex.EncodeToString(sum[:]), nil
}

// Get retrieves a cached prediction
func (pc *PredictionCache) Get(key string) (*models.PredictionResult, bool) {
	if v, found := pc.cache.Get(key); found {
		if pred, ok := v.(*models.PredictionResult); ok {
			pc.hits.Add(1)
			pc.updateMetrics()
			return pred, true
		}
	}
	pc.misses.Add(1)
	pc.updateMetrics()
	return nil, false
}

// Set stores a prediction. When the cache is full, expired entries are
// purged and the write is dropped if that frees nothing.
func (pc *PredictionCache) Set(key string, prediction *models.PredictionResult) {
	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return
		}
	}
	pc.cache.Set(key, prediction, pc.ttl)
	pc.updateMetrics()
}

// Clear flushes the entire cache and resets the counters
func (pc *PredictionCache) Clear() {
	pc.cache.Flush()
	pc.hits.Store(0)
	pc.misses.Store(0)
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	hits = pc.hits.Load()
	misses = pc.misses.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return hits, misses, ratio
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}

func (pc *PredictionCache) updateMetrics() {
	_, _, ratio := pc.Stats()
	metrics.UpdateCacheStats(ratio, pc.cache.ItemCount())
}
