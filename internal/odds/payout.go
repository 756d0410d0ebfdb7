package odds

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Payout returns the total return (stake included) of a winning bet at an
// American price, rounded to cents.
func Payout(stake decimal.Decimal, american int) (decimal.Decimal, error) {
	if err := ValidateAmerican(american); err != nil {
		return decimal.Zero, err
	}
	if stake.IsNegative() {
		return decimal.Zero, fmt.Errorf("stake must not be negative: %s", stake)
	}
	return stake.Add(Profit(stake, american)).Round(2), nil
}

// Profit returns the winnings on a stake at an American price, excluding the
// stake. The price must already be valid.
func Profit(stake decimal.Decimal, american int) decimal.Decimal {
	price := decimal.NewFromInt(int64(american))
	if american > 0 {
		return stake.Mul(price).Div(hundred)
	}
	return stake.Mul(hundred).Div(price.Abs())
}
