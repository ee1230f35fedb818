package money

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// RupeesToPaise converts a user-entered rupee value (like 12.34) to paise.
// The gateway and every table store paise; rupees exist only at the API edge.
func RupeesToPaise(rupees float64) (int64, error) {
	if math.IsNaN(rupees) || math.IsInf(rupees, 0) {
		return 0, ErrInvalidAmount
	}
	if rupees <= 0 {
		return 0, ErrInvalidAmount
	}
	// int64 max ~9e18 paise => ~9e16 rupees
	if rupees > 9e16 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return int64(math.Round(rupees * 100.0)), nil
}

// PaiseToRupeesString formats paise as a decimal rupee string without
// going through float.
func PaiseToRupeesString(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}
