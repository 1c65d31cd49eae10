package utils

import "github.com/shopspring/decimal"

// Round rounds half away from zero on the shortest decimal representation of v
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Round4 rounds to four decimal places
func Round4(v float64) float64 {
	return Round(v, 4)
}

// MaxFloat returns the larger of two floats
func MaxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// MinFloat returns the smaller of two floats
func MinFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
