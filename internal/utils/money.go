package utils

import (
	"fmt"
	"math"
)

// Round2 rounds to 2 decimal places, half-up. All monetary math in the engine
// goes through this so quotes and snapshots agree to the paisa.
func Round2(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// SplitHalves splits an amount into two 2-dp parts that sum back exactly:
// the first is the floor half, the second carries any odd paisa.
func SplitHalves(amount float64) (float64, float64) {
	paise := int64(math.Floor(amount*100 + 0.5))
	first := paise / 2
	return float64(first) / 100, float64(paise-first) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
