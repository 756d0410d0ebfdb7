package explain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/logger"
	"github.com/yourusername/clever-edge/internal/models"
)

func scoredBet() *models.ScoredBet {
	return &models.ScoredBet{
		GameID:       "game-1",
		Book:         "BookA",
		Market:       models.MarketMoneyline,
		Outcome:      models.OutcomeHome,
		AmericanOdds: 120,
		TrueProb:     0.5,
		Score: models.EdgeScore{
			EV:           0.10,
			Kelly:        0.0417,
			Confidence:   0.8,
			OverallScore: 45,
			Flags:        []models.EdgeFlag{models.FlagLowKelly},
		},
	}
}

func testHTTPConfig(url string) HTTPProviderConfig {
	cfg := DefaultHTTPProviderConfig()
	cfg.URL = url
	cfg.MaxRetries = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	cfg.RateLimit = 0
	cfg.CircuitBreakerMax = 2
	return cfg
}

func TestLocalProviderDeterministic(t *testing.T) {
	p := NewLocalProvider()
	first, err := p.Explain(context.Background(), scoredBet())
	require.NoError(t, err)
	second, err := p.Explain(context.Background(), scoredBet())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "moneyline home at BookA (+120)")
	assert.Contains(t, first, "Moderate edge")
	assert.Contains(t, first, "low_kelly")
}

func TestLocalProviderNegativeEV(t *testing.T) {
	bet := scoredBet()
	bet.Score.Flags = []models.EdgeFlag{models.FlagNegativeEV}
	text, err := NewLocalProvider().Explain(context.Background(), bet)
	require.NoError(t, err)
	assert.Contains(t, text, "pass")

	_, err = NewLocalProvider().Explain(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilBet)
}

func TestHTTPProviderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req explainRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "game-1", req.GameID)
		assert.Equal(t, []string{"low_kelly"}, req.Flags)
		_ = json.NewEncoder(w).Encode(explainResponse{Explanation: "remote says bet"})
	}))
	defer srv.Close()

	cfg := testHTTPConfig(srv.URL)
	cfg.APIKey = "secret"
	p, err := NewHTTPProvider(cfg, logger.Discard())
	require.NoError(t, err)

	text, err := p.Explain(context.Background(), scoredBet())
	require.NoError(t, err)
	assert.Equal(t, "remote says bet", text)
}

func TestHTTPProviderCircuitOpens(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(testHTTPConfig(srv.URL), logger.Discard())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = p.Explain(context.Background(), scoredBet())
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	}
	_, err = p.Explain(context.Background(), scoredBet())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPProviderCircuitRecoversAfterCooldown(t *testing.T) {
	var healthy atomic.Bool
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(explainResponse{Explanation: "back online"})
	}))
	defer srv.Close()

	cfg := testHTTPConfig(srv.URL)
	cfg.CircuitCooldown = time.Minute
	p, err := NewHTTPProvider(cfg, logger.Discard())
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		_, err = p.Explain(context.Background(), scoredBet())
		require.ErrorIs(t, err, ErrProviderUnavailable)
	}

	now = now.Add(30 * time.Second)
	_, err = p.Explain(context.Background(), scoredBet())
	assert.ErrorIs(t, err, ErrCircuitOpen)

	// A failed trial restarts the cooldown.
	now = now.Add(31 * time.Second)
	_, err = p.Explain(context.Background(), scoredBet())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	_, err = p.Explain(context.Background(), scoredBet())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	healthy.Store(true)
	now = now.Add(time.Minute)
	text, err := p.Explain(context.Background(), scoredBet())
	require.NoError(t, err)
	assert.Equal(t, "back online", text)

	_, err = p.Explain(context.Background(), scoredBet())
	require.NoError(t, err)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestHTTPProviderEmptyExplanation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"explanation":""}`))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(testHTTPConfig(srv.URL), logger.Discard())
	require.NoError(t, err)
	_, err = p.Explain(context.Background(), scoredBet())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFallbackProviderUsesLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote, err := NewHTTPProvider(testHTTPConfig(srv.URL), logger.Discard())
	require.NoError(t, err)
	p := NewFallbackProvider(remote, logger.Discard())

	text, err := p.Explain(context.Background(), scoredBet())
	require.NoError(t, err)
	local, _ := NewLocalProvider().Explain(context.Background(), scoredBet())
	assert.Equal(t, local, text)
	assert.Equal(t, "http", p.Name())
}

func TestNewProviderDispatch(t *testing.T) {
	local, err := NewProvider(config.ExplainConfig{Provider: "local"}, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &LocalProvider{}, local)

	remote, err := NewProvider(config.ExplainConfig{Provider: "HTTP", URL: "http://localhost:1"}, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &FallbackProvider{}, remote)

	_, err = NewProvider(config.ExplainConfig{Provider: "http"}, logger.Discard())
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = NewProvider(config.ExplainConfig{Provider: "oracle"}, logger.Discard())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
