package odds

import (
	"fmt"
)

// RemoveVig converts each American price to its implied probability and
// normalises the set so it sums to exactly 1.0.
func RemoveVig(americans []int) ([]float64, error) {
	if len(americans) == 0 {
		return nil, ErrEmptyInput
	}
	if len(americans) == 1 {
		if err := ValidateAmerican(americans[0]); err != nil {
			return nil, err
		}
		return []float64{1.0}, nil
	}

	probs := make([]float64, len(americans))
	sum := 0.0
	for i, a := range americans {
		p, err := AmericanImplied(a)
		if err != nil {
			return nil, fmt.Errorf("price %d: %w", i, err)
		}
		probs[i] = p
		sum += p
	}

	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Overround returns the sum of implied probabilities minus one; positive values
// are the book's margin.
func Overround(americans []int) (float64, error) {
	if len(americans) == 0 {
		return 0, ErrEmptyInput
	}
	sum := 0.0
	for i, a := range americans {
		p, err := AmericanImplied(a)
		if err != nil {
			return 0, fmt.Errorf("price %d: %w", i, err)
		}
		sum += p
	}
	return sum - 1.0, nil
}
