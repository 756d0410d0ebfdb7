package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/calibration"
	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/edge"
	"github.com/yourusername/clever-edge/internal/ensemble"
	"github.com/yourusername/clever-edge/internal/explain"
	"github.com/yourusername/clever-edge/internal/logger"
	"github.com/yourusername/clever-edge/internal/metrics"
	"github.com/yourusername/clever-edge/internal/models"
	"github.com/yourusername/clever-edge/internal/odds"
	"github.com/yourusername/clever-edge/internal/opportunity"
	"github.com/yourusername/clever-edge/internal/performance"
	"github.com/yourusername/clever-edge/internal/repository"
	"github.com/yourusername/clever-edge/internal/value"
)

// EdgeReport is the full evaluation of one game against the available lines.
type EdgeReport struct {
	Prediction *models.PredictionResult `json:"prediction"`
	// Actionable is false when the prediction confidence is below the
	// engine's minimum; the bets are still reported for review.
	Actionable bool                `json:"actionable"`
	Bets       []*models.ScoredBet `json:"bets"`
	Arbitrages []*models.Arbitrage `json:"arbitrages"`
	Middles    []*models.Middle    `json:"middles"`
}

// EdgeService combines predictions with market lines into ranked bets and
// opportunities
type EdgeService struct {
	predictor *ensemble.Predictor
	cache     *PredictionCache
	lines     repository.BookLineRepository
	settled   repository.SettledBetRepository
	explainer explain.Provider
	scaler    *calibration.PlattScaler
	cfg       config.EngineConfig
	audit     *logger.AuditLogger
	model     *logger.ModelLogger
}

// EdgeOption configures an EdgeService.
type EdgeOption func(*EdgeService)

// WithScaler recalibrates the home win probability before pricing.
func WithScaler(s *calibration.PlattScaler) EdgeOption {
	return func(e *EdgeService) { e.scaler = s }
}

// WithRepositories enables the game and ledger lookups.
func WithRepositories(lines repository.BookLineRepository, settled repository.SettledBetRepository) EdgeOption {
	return func(e *EdgeService) {
		e.lines = lines
		e.settled = settled
	}
}

// NewEdgeService creates a new edge service
func NewEdgeService(
	predictor *ensemble.Predictor,
	cache *PredictionCache,
	explainer explain.Provider,
	cfg config.EngineConfig,
	log *logrus.Logger,
	opts ...EdgeOption,
) *EdgeService {
	s := &EdgeService{
		predictor: predictor,
		cache:     cache,
		explainer: explainer,
		cfg:       cfg,
		audit:     logger.NewAuditLogger(log),
		model:     logger.NewModelLogger(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict returns the ensemble prediction for f, served from cache when the
// same vector was seen under the same model version. Jittered predictors
// bypass the cache.
func (s *EdgeService) Predict(f *models.FeatureVector) (*models.PredictionResult, error) {
	cacheable := s.cache != nil && !s.cfg.JitterEnabled
	var key string
	if cacheable {
		var err error
		if key, err = Key(s.predictor.Version(), f); err != nil {
			return nil, err
		}
		if pred, ok := s.cache.Get(key); ok {
			metrics.RecordPrediction("cache")
			s.model.LogPrediction(f.GameID, pred.ModelVersion, f.Completeness(), pred.Confidence, true)
			return pred, nil
		}
	}

	pred, err := s.predictor.Predict(f)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Set(key, pred)
	}
	metrics.RecordPrediction("model")
	s.model.LogPrediction(f.GameID, pred.ModelVersion, f.Completeness(), pred.Confidence, false)
	return pred, nil
}

// PredictBatch predicts many games concurrently, preserving input order.
func (s *EdgeService) PredictBatch(features []*models.FeatureVector) ([]*models.PredictionResult, error) {
	start := time.Now()
	results, err := s.predictor.PredictBatch(features)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.RecordBatchPrediction(elapsed.Seconds())
	s.model.LogBatchPrediction(s.predictor.Version(), len(results), float64(elapsed.Microseconds())/1000)
	return results, nil
}

// Evaluate prices every two-way moneyline quote against the model, ranks the
// resulting bets and scans the lines for arbitrages and middles. Three-way
// lines are left out of pricing because the model has no draw probability,
// but they still take part in the scans.
func (s *EdgeService) Evaluate(f *models.FeatureVector, lines []*models.BookLine) (*EdgeReport, error) {
	pred, err := s.Predict(f)
	if err != nil {
		return nil, err
	}

	homeProb := pred.WinProbHome
	if s.scaler != nil {
		homeProb = s.scaler.Apply(homeProb)
	}

	var bets []*models.ScoredBet
	for _, line := range lines {
		if line == nil || line.Moneyline == nil || line.Moneyline.Draw != nil {
			continue
		}
		for _, side := range []struct {
			outcome models.Outcome
			price   int
			prob    float64
		}{
			{models.OutcomeHome, line.Moneyline.Home, homeProb},
			{models.OutcomeAway, line.Moneyline.Away, 1 - homeProb},
		} {
			bet, err := s.scoreQuote(pred, line, side.outcome, side.price, side.prob)
			if err != nil {
				return nil, err
			}
			bets = append(bets, bet)
		}
	}
	edge.Rank(bets)
	if len(bets) > 0 {
		s.model.LogEdgeRanking(f.GameID, len(bets), bets[0].Score.OverallScore, bets[0].Book)
	}

	arbs, err := opportunity.ScanArbitrage(lines)
	if err != nil {
		return nil, fmt.Errorf("arbitrage scan failed: %w", err)
	}
	for _, a := range arbs {
		metrics.RecordArbitrage(string(a.Market), a.ProfitPercent)
		s.audit.LogArbitrage(a)
	}

	middles, err := opportunity.ScanMiddles(lines, s.cfg.SpreadRange)
	if err != nil {
		return nil, fmt.Errorf("middle scan failed: %w", err)
	}
	for _, m := range middles {
		metrics.RecordMiddle(string(m.Market))
		s.audit.LogMiddle(m)
	}

	actionable := pred.MeetsThreshold(s.cfg.MinPredictionConfidence)
	if !actionable {
		s.model.LogLowConfidence(f.GameID, pred.Confidence, s.cfg.MinPredictionConfidence)
	}

	return &EdgeReport{
		Prediction: pred,
		Actionable: actionable,
		Bets:       bets,
		Arbitrages: arbs,
		Middles:    middles,
	}, nil
}

// EvaluateGame loads the latest lines for f.GameID and evaluates them.
func (s *EdgeService) EvaluateGame(ctx context.Context, f *models.FeatureVector) (*EdgeReport, error) {
	if f.GameID == "" {
		return nil, ErrMissingGameID
	}
	if s.lines == nil {
		return nil, fmt.Errorf("book line repository not configured")
	}
	lines, err := s.lines.GetLatestByGame(ctx, f.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for %s: %w", f.GameID, err)
	}
	return s.Evaluate(f, lines)
}

// Explain describes a scored bet with the configured provider.
func (s *EdgeService) Explain(ctx context.Context, bet *models.ScoredBet) (string, error) {
	text, err := s.explainer.Explain(ctx, bet)
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordExplanation(s.explainer.Name(), status)
	return text, err
}

// Performance summarises bets settled within the window.
func (s *EdgeService) Performance(ctx context.Context, window models.TimeWindow) (models.PerformanceSummary, error) {
	if s.settled == nil {
		return models.PerformanceSummary{}, fmt.Errorf("settled bet repository not configured")
	}
	bets, err := s.settled.GetSettled(ctx, window)
	if err != nil {
		return models.PerformanceSummary{}, fmt.Errorf("failed to load settled bets: %w", err)
	}
	return performance.Summarize(bets), nil
}

func (s *EdgeService) scoreQuote(pred *models.PredictionResult, line *models.BookLine, outcome models.Outcome, american int, prob float64) (*models.ScoredBet, error) {
	dec, err := odds.AmericanToDecimal(american)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", line.Book, outcome, err)
	}
	ev, err := value.ExpectedValue(prob, dec)
	if err != nil {
		return nil, err
	}
	kelly, err := value.Kelly(prob, dec, s.cfg.KellyFraction)
	if err != nil {
		return nil, err
	}
	score, err := edge.Score(ev, kelly, pred.Confidence, s.cfg.LineCertainty)
	if err != nil {
		return nil, err
	}
	metrics.RecordEdgeScore(string(models.MarketMoneyline), score.OverallScore)

	return &models.ScoredBet{
		GameID:       line.GameID,
		Book:         line.Book,
		Market:       models.MarketMoneyline,
		Outcome:      outcome,
		AmericanOdds: american,
		TrueProb:     prob,
		Score:        score,
	}, nil
}
