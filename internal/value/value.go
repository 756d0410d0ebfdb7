package value

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultKellyFraction is the quarter-Kelly multiplier applied for variance control.
const DefaultKellyFraction = 0.25

// ExpectedValue returns trueProb*decimalOdds - 1, the expected profit per unit
// staked. The probability is not clamped: out-of-range values are a caller error.
func ExpectedValue(trueProb, decimalOdds float64) (float64, error) {
	if err := validate(trueProb, decimalOdds); err != nil {
		return 0, err
	}
	return trueProb*decimalOdds - 1, nil
}

// EdgePercent returns the relative edge of trueProb over the price's implied
// probability, in percent.
func EdgePercent(trueProb, decimalOdds float64) (float64, error) {
	ev, err := ExpectedValue(trueProb, decimalOdds)
	if err != nil {
		return 0, err
	}
	return ev * 100, nil
}

// RawKelly returns the unscaled Kelly fraction (b*p - q)/b, which may be negative.
func RawKelly(trueProb, decimalOdds float64) (float64, error) {
	if err := validate(trueProb, decimalOdds); err != nil {
		return 0, err
	}
	b := decimalOdds - 1
	q := 1 - trueProb
	return (b*trueProb - q) / b, nil
}

// Kelly returns the fractional Kelly stake as a share of bankroll. A negative
// raw fraction (no edge) yields 0 rather than a short stake. The scaled result
// is clamped to [0,1].
func Kelly(trueProb, decimalOdds, maxFraction float64) (float64, error) {
	if math.IsNaN(maxFraction) || maxFraction <= 0 || maxFraction > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFraction, maxFraction)
	}
	raw, err := RawKelly(trueProb, decimalOdds)
	if err != nil {
		return 0, err
	}
	if raw <= 0 {
		return 0, nil
	}
	return math.Min(1, raw*maxFraction), nil
}

// KellyStake converts a Kelly fraction into a stake rounded down to cents.
func KellyStake(bankroll decimal.Decimal, fraction float64) (decimal.Decimal, error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidFraction, fraction)
	}
	if bankroll.IsNegative() {
		return decimal.Zero, fmt.Errorf("bankroll must not be negative: %s", bankroll)
	}
	return bankroll.Mul(decimal.NewFromFloat(fraction)).RoundFloor(2), nil
}

func validate(trueProb, decimalOdds float64) error {
	if math.IsNaN(trueProb) || trueProb < 0 || trueProb > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, trueProb)
	}
	if math.IsNaN(decimalOdds) || math.IsInf(decimalOdds, 0) || decimalOdds <= 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDecimalOdds, decimalOdds)
	}
	return nil
}
