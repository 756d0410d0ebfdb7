package scheduler

import (
	"context"
	"errors"

	"github.com/yourusername/clever-edge/internal/service"
)

// Job names.
const (
	DriftJobName       = "drift"
	CalibrationJobName = "calibration"
)

// DriftJob wraps DriftService.RunCheck.
func DriftJob(svc *service.DriftService) Job {
	return JobFunc{JobName: DriftJobName, Fn: func(ctx context.Context) error {
		_, err := svc.RunCheck(ctx)
		if errors.Is(err, service.ErrNoFeatures) {
			return nil
		}
		return err
	}}
}

// CalibrationJob wraps CalibrationService.Run. Too few outcomes is not a failure.
func CalibrationJob(svc *service.CalibrationService) Job {
	return JobFunc{JobName: CalibrationJobName, Fn: func(ctx context.Context) error {
		_, err := svc.Run(ctx)
		if errors.Is(err, service.ErrInsufficientSamples) {
			return nil
		}
		return err
	}}
}
