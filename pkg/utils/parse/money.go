// ABOUTME: Utility functions for parsing monetary amounts from loosely typed values
// ABOUTME: Accepts JSON numbers and European or English formatted strings, defaulting to zero

package parse

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount parses a monetary value and reports whether parsing succeeded.
//
// Accepted inputs are JSON numbers (float64, json.Number, ints) and strings
// with an optional currency marker ("€", "EUR") and spaces. Separator rules:
//   - both '.' and ',' present: the rightmost one is the decimal separator
//   - a single ',' is the decimal separator ("1234,56")
//   - a single '.' is the decimal separator ("1234.56")
//   - a separator repeated several times groups thousands ("1.234.567")
//
// NaN and infinities are rejected.
func Amount(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return finite(f)
		}
		return amountFromString(v.String())
	case string:
		return amountFromString(v)
	}
	return 0, false
}

// AmountOrZero parses a monetary value, returning 0 if parsing fails
func AmountOrZero(raw any) float64 {
	v, _ := Amount(raw)
	return v
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var currencyReplacer = strings.NewReplacer("€", "", "EUR", "", "eur", "", " ", "", "\u00a0", "")

func amountFromString(s string) (float64, bool) {
	s = currencyReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	sign := ""
	switch s[0] {
	case '-':
		sign, s = "-", s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return 0, false
		}
	}

	dots, commas := strings.Count(s, "."), strings.Count(s, ",")
	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")

	switch {
	case dots > 0 && commas > 0:
		if lastComma > lastDot {
			if commas > 1 {
				return 0, false
			}
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			if dots > 1 {
				return 0, false
			}
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if s == "" || s == "." {
		return 0, false
	}

	f, err := strconv.ParseFloat(sign+s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}
