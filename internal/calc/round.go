package calc

import "math"

// epsilon nudges values off binary representation error before rounding,
// so that e.g. 1.005 lands on 1.01 instead of 1.00.
const epsilon = 2.220446049250313e-16

// Round2 rounds a monetary value to two decimal places (cents).
// Round2(Round2(x)) == Round2(x) for all x.
func Round2(value float64) float64 {
	return math.Round((value+epsilon)*100) / 100
}
