package internal

import (
	"math"
	"strconv"
	"strings"
)

// Dec is the visible decimal representation of a number, decomposed the way
// plural rule evaluation consumes it: significant digits plus the decimal
// point position and the count of visible fraction digits. The layout matches
// what x/text plural rule matching expects (value = 0.Digits x 10^Exp).
type Dec struct {
	Digits []byte // significant digits, raw values 0-9, big-endian
	Exp    int    // decimal point position relative to Digits
	Scale  int    // visible fraction digits, including trailing zeros
}

// FormatDec renders the absolute value of v with the given fraction-digit
// bounds and decomposes the rendered form. minFrac pads with trailing zeros,
// maxFrac rounds; trailing zeros above minFrac are trimmed, mirroring how the
// visible formatted output would look. Out-of-range bounds are clamped.
func FormatDec(v float64, minFrac, maxFrac int) Dec {
	if minFrac < 0 {
		minFrac = 0
	}
	if maxFrac > MaxFractionDigits {
		maxFrac = MaxFractionDigits
	}
	if maxFrac < minFrac {
		maxFrac = minFrac
	}
	v = math.Abs(v)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(fracPart) > maxFrac {
		s = strconv.FormatFloat(v, 'f', maxFrac, 64)
		intPart, fracPart, _ = strings.Cut(s, ".")
		fracPart = trimTrailingZeros(fracPart, minFrac)
	}
	for len(fracPart) < minFrac {
		fracPart += "0"
	}

	all := intPart + fracPart
	first, last := -1, -1
	for i := 0; i < len(all); i++ {
		if all[i] != '0' {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		// All zero digits, only the scale is significant.
		return Dec{Scale: len(fracPart)}
	}

	digits := make([]byte, last-first+1)
	for i := range digits {
		digits[i] = all[first+i] - '0'
	}
	return Dec{
		Digits: digits,
		Exp:    len(intPart) - first,
		Scale:  len(fracPart),
	}
}

// IsInt reports whether v is a mathematical integer representable as int64.
func IsInt(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Trunc(v) != v {
		return 0, false
	}
	if v < math.MinInt64 || v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func trimTrailingZeros(frac string, min int) string {
	for len(frac) > min && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	return frac
}
