package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/models"
)

// HTTPProviderConfig configures the remote explanation client
type HTTPProviderConfig struct {
	URL               string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures before the circuit opens
	CircuitCooldown   time.Duration
}

// DefaultHTTPProviderConfig returns recommended defaults
func DefaultHTTPProviderConfig() HTTPProviderConfig {
	return HTTPProviderConfig{
		Timeout:           10 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      2 * time.Second,
		RateLimit:         5.0,
		CircuitBreakerMax: 5,
		CircuitCooldown:   30 * time.Second,
	}
}

// HTTPProviderConfigFrom overlays the explain section on the defaults.
func HTTPProviderConfigFrom(cfg config.ExplainConfig) HTTPProviderConfig {
	c := DefaultHTTPProviderConfig()
	c.URL = cfg.URL
	c.APIKey = cfg.APIKey
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	if cfg.RateLimit > 0 {
		c.RateLimit = cfg.RateLimit
	}
	if cfg.CircuitCooldown > 0 {
		c.CircuitCooldown = cfg.CircuitCooldown
	}
	c.MaxRetries = cfg.MaxRetries
	return c
}

type explainRequest struct {
	GameID       string   `json:"game_id"`
	Book         string   `json:"book"`
	Market       string   `json:"market"`
	Outcome      string   `json:"outcome"`
	AmericanOdds int      `json:"american_odds"`
	TrueProb     float64  `json:"true_prob"`
	EV           float64  `json:"ev"`
	Kelly        float64  `json:"kelly"`
	Confidence   float64  `json:"confidence"`
	OverallScore int      `json:"overall_score"`
	Flags        []string `json:"flags"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

// HTTPProvider posts scored bets to a remote explanation service, with rate
// limiting, retries and a consecutive-failure circuit breaker. An open circuit
// lets a single trial call through once the cooldown has passed; success
// closes it, failure restarts the cooldown.
type HTTPProvider struct {
	cfg     HTTPProviderConfig
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
	now     func() time.Time

	mu                sync.Mutex
	consecutiveErrors int
	lastError         error
	openedAt          time.Time
	trialInFlight     bool
}

// NewHTTPProvider creates a remote provider.
func NewHTTPProvider(cfg HTTPProviderConfig, logger *logrus.Logger) (*HTTPProvider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrProviderUnavailable)
	}
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.CircuitBreakerMax <= 0 {
		cfg.CircuitBreakerMax = DefaultHTTPProviderConfig().CircuitBreakerMax
	}
	if cfg.CircuitCooldown <= 0 {
		cfg.CircuitCooldown = DefaultHTTPProviderConfig().CircuitCooldown
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy
	// Retry chatter stays out of the application log
	retryClient.Logger = nil

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &HTTPProvider{
		cfg:     cfg,
		client:  retryClient,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Name implements Provider.
func (p *HTTPProvider) Name() string {
	return string(TagHTTP)
}

// Explain implements Provider.
func (p *HTTPProvider) Explain(ctx context.Context, bet *models.ScoredBet) (string, error) {
	if bet == nil {
		return "", ErrNilBet
	}
	trial, err := p.checkCircuit()
	if err != nil {
		return "", err
	}
	if trial {
		defer p.endTrial()
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(newExplainRequest(bet))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.recordFailure(err)
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(msg))
		if resp.StatusCode >= 500 {
			p.recordFailure(err)
		}
		return "", err
	}

	var out explainResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.Explanation == "" {
		return "", fmt.Errorf("%w: empty explanation", ErrInvalidResponse)
	}

	p.recordSuccess()
	return out.Explanation, nil
}

// Close releases idle connections.
func (p *HTTPProvider) Close() error {
	p.client.HTTPClient.CloseIdleConnections()
	return nil
}

// checkCircuit refuses calls while the circuit is open. trial is true when
// the call is the half-open trial after the cooldown.
func (p *HTTPProvider) checkCircuit() (trial bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.consecutiveErrors < p.cfg.CircuitBreakerMax {
		return false, nil
	}
	if !p.trialInFlight && p.now().Sub(p.openedAt) >= p.cfg.CircuitCooldown {
		p.trialInFlight = true
		p.logger.Info("Explanation circuit breaker half-open, sending trial request")
		return true, nil
	}
	return false, fmt.Errorf("%w: %v", ErrCircuitOpen, p.lastError)
}

// endTrial releases the half-open slot. After a trial that neither succeeded
// nor counted as a failure, the next caller becomes the trial.
func (p *HTTPProvider) endTrial() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trialInFlight = false
}

func (p *HTTPProvider) recordFailure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consecutiveErrors++
	p.lastError = err
	if p.trialInFlight || p.consecutiveErrors == p.cfg.CircuitBreakerMax {
		p.openedAt = p.now()
		p.logger.WithFields(logrus.Fields{
			"failures": p.consecutiveErrors,
			"cooldown": p.cfg.CircuitCooldown,
			"error":    err,
		}).Error("Explanation circuit breaker opened")
	}
}

func (p *HTTPProvider) recordSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.consecutiveErrors >= p.cfg.CircuitBreakerMax {
		p.logger.Info("Explanation circuit breaker closed")
	}
	p.consecutiveErrors = 0
	p.lastError = nil
}

func newExplainRequest(bet *models.ScoredBet) explainRequest {
	flags := make([]string, len(bet.Score.Flags))
	for i, f := range bet.Score.Flags {
		flags[i] = string(f)
	}
	return explainRequest{
		GameID:       bet.GameID,
		Book:         bet.Book,
		Market:       string(bet.Market),
		Outcome:      string(bet.Outcome),
		AmericanOdds: bet.AmericanOdds,
		TrueProb:     bet.TrueProb,
		EV:           bet.Score.EV,
		Kelly:        bet.Score.Kelly,
		Confidence:   bet.Score.Confidence,
		OverallScore: bet.Score.OverallScore,
		Flags:        flags,
	}
}

// retryPolicy retries network errors, 429 and 5xx gateway failures.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, err
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}
