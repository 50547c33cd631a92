package money

import "fmt"

// All monetary amounts in the system are int64 cents. This package holds the
// single rounding rule (round half up) and the display formatting used at the
// response boundary. Callers must never carry fractional cents between steps.

// RoundHalfUpDiv divides num by div rounding half up. num must be >= 0 and
// div must be > 0; every payroll quantity that reaches a division is already
// clamped non-negative.
func RoundHalfUpDiv(num, div int64) int64 {
	return (num + div/2) / div
}

// MulDivRound computes a*b/div rounded half up to the nearest cent.
func MulDivRound(a, b, div int64) int64 {
	return RoundHalfUpDiv(a*b, div)
}

// ApplyBps applies a rate expressed in basis points (1/10000) to an amount of
// cents, rounding half up.
func ApplyBps(amountCents, rateBps int64) int64 {
	return MulDivRound(amountCents, rateBps, 10_000)
}

// Format renders cents as a decimal string, e.g. 123456 -> "1234.56".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
