package util

import "math"

// Panics if there is an error, otherwise returns the result
func Try[T any](result T, err error) T {
	CheckErr(err)
	return result
}

// Panics if error is not null
func CheckErr(err error) {
	if err != nil {
		panic(err)
	}
}

// Rounds half away from zero to 2 fractional digits (money amounts)
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
