package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ParseMoney parses a charged-amount string into integer cents.
// Accepts currency symbols, thousands separators, and accounting-style
// parentheses for negatives: "(123.45)" -> -12345. Empty or non-numeric
// input yields 0, which callers must treat as "unknown amount", not "free".
// Lossy by design; it never errors, because bill data is adversarially messy
// and a bad field must not suppress detection on the rest of the bill.
func ParseMoney(s string) int64 {
	cents, _ := ParseMoneyOK(s)
	return cents
}

// ParseMoneyOK is ParseMoney plus an ok flag distinguishing a genuine zero
// amount from unparseable input. Rules exclude not-ok lines from monetary
// evaluation while still counting them for presence checks.
func ParseMoneyOK(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	cents := int64(math.Round(f * 100))
	if negative {
		cents = -cents
	}
	return cents, true
}

// DollarsToCents converts a float dollar amount to cents, rounding to avoid
// truncation bias.
func DollarsToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// CentsToDollars converts cents back to a float dollar amount for display.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100
}

// AmountsMatch reports whether two cent amounts agree within the given cent
// tolerance. With exact integer cents a zero tolerance is an exact match;
// the one-cent default absorbs upstream float rounding.
func AmountsMatch(a, b, toleranceCents int64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= toleranceCents
}
