package client

import "strings"

// FormatPhoneNumber applies the Brazilian mobile mask (11) 99999-9999 to
// whatever digits value contains. Extra digits beyond eleven are dropped.
func FormatPhoneNumber(value string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)

	switch n := len(digits); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + digits
	case n <= 7:
		return "(" + digits[:2] + ") " + digits[2:]
	default:
		if n > 11 {
			digits = digits[:11]
		}
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}
