package utils

import (
	"regexp"
	"strconv"
)

var (
	nonMoneyChars = regexp.MustCompile(`[^\d.]+`)
	nonDigitChars = regexp.MustCompile(`[^\d]+`)
)

// MoneyToFloat parses a price out of a display string such as "$1,299.99" by
// trimming everything except digits and the decimal point.
func MoneyToFloat(s string) (float64, error) {
	return strconv.ParseFloat(nonMoneyChars.ReplaceAllString(s, ""), 64)
}

// ExtractInt parses an integer out of a display string such as "Only 3 left".
func ExtractInt(s string) (int, error) {
	return strconv.Atoi(nonDigitChars.ReplaceAllString(s, ""))
}
