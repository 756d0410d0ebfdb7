package drift

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/clever-edge/internal/models"
)

// Samples is a reference/current pair for one feature.
type Samples struct {
	Reference []float64
	Current   []float64
}

// Monitor produces DriftReports with a configured bin count and threshold.
type Monitor struct {
	bins      int
	threshold float64
	now       func() time.Time
}

// NewMonitor creates a drift monitor.
func NewMonitor(bins int, threshold float64) (*Monitor, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return &Monitor{bins: bins, threshold: threshold, now: time.Now}, nil
}

// Threshold returns the configured PSI threshold.
func (m *Monitor) Threshold() float64 {
	return m.threshold
}

// Check compares one feature's distributions.
func (m *Monitor) Check(feature string, reference, current []float64) (*models.DriftReport, error) {
	psi, err := PSI(reference, current, m.bins)
	if err != nil {
		return nil, fmt.Errorf("feature %s: %w", feature, err)
	}
	return &models.DriftReport{
		ID:          uuid.New(),
		FeatureName: feature,
		PSI:         psi,
		Threshold:   m.threshold,
		IsDrifted:   IsDrifted(psi, m.threshold),
		Severity:    Severity(psi, m.threshold),
		Reference:   append([]float64(nil), reference...),
		Current:     append([]float64(nil), current...),
		CheckedAt:   m.now().UTC(),
	}, nil
}

// CheckAll checks every feature concurrently and returns reports sorted by
// feature name.
func (m *Monitor) CheckAll(features map[string]Samples) ([]*models.DriftReport, error) {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	reports := make([]*models.DriftReport, len(names))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		s := features[name]
		g.Go(func() error {
			report, err := m.Check(name, s.Reference, s.Current)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
