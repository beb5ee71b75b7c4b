package util

import (
	"math"
	"strconv"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// Round2 rounds to two decimal places for currency display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimal places, used for reported model scores.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
