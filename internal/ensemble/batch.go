package ensemble

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/clever-edge/internal/models"
)

// PredictBatch predicts every feature vector concurrently. Results keep the
// input order; the first invalid vector fails the batch.
func (p *Predictor) PredictBatch(features []*models.FeatureVector) ([]*models.PredictionResult, error) {
	results := make([]*models.PredictionResult, len(features))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range features {
		i, f := i, f
		g.Go(func() error {
			res, err := p.Predict(f)
			if err != nil {
				return fmt.Errorf("feature vector %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
