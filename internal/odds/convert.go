package odds

import (
	"fmt"
	"math"
)

// ValidateAmerican returns an error unless |american| >= 100.
func ValidateAmerican(american int) error {
	if american > -100 && american < 100 {
		return fmt.Errorf("%w: %d", ErrInvalidAmericanOdds, american)
	}
	return nil
}

// AmericanToDecimal converts an American price to decimal odds (stake included).
func AmericanToDecimal(american int) (float64, error) {
	if err := ValidateAmerican(american); err != nil {
		return 0, err
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/math.Abs(float64(american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds back to the nearest American price.
// Even money (2.0) is quoted as +100.
func DecimalToAmerican(decimalOdds float64) (int, error) {
	if !finite(decimalOdds) || decimalOdds <= 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDecimalOdds, decimalOdds)
	}
	if decimalOdds >= 2.0 {
		return int(math.Round((decimalOdds - 1.0) * 100)), nil
	}
	return int(math.Round(-100.0 / (decimalOdds - 1.0))), nil
}

// ImpliedProbability returns 1/decimalOdds, the market's probability before
// vig removal.
func ImpliedProbability(decimalOdds float64) (float64, error) {
	if !finite(decimalOdds) || decimalOdds <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDecimalOdds, decimalOdds)
	}
	return 1.0 / decimalOdds, nil
}

// AmericanImplied returns the implied probability of an American price.
func AmericanImplied(american int) (float64, error) {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return ImpliedProbability(dec)
}

// ProbabilityToDecimal returns the fair decimal price for probability p.
func ProbabilityToDecimal(p float64) (float64, error) {
	if !finite(p) || p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return 1.0 / p, nil
}

// ProbabilityToAmerican returns the fair American price for probability p.
func ProbabilityToAmerican(p float64) (int, error) {
	dec, err := ProbabilityToDecimal(p)
	if err != nil {
		return 0, err
	}
	return DecimalToAmerican(dec)
}

// Fractional returns the reduced fractional form num/den of an American price
// (+150 is 3/2, -200 is 1/2).
func Fractional(american int) (num, den int64, err error) {
	if err := ValidateAmerican(american); err != nil {
		return 0, 0, err
	}
	if american > 0 {
		num, den = int64(american), 100
	} else {
		num, den = 100, int64(-american)
	}
	g := gcd(num, den)
	return num / g, den / g, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
