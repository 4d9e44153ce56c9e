// Package mask hides parts of customer details for display.
package mask

import (
	"strconv"
	"strings"
)

const (
	maskChar         = "*"
	keepNumberDigits = 2
	keepEmailChars   = 3
)

// AccountNumber keeps the first two digits of n and masks the rest.
func AccountNumber(n uint64) string {
	return keepPrefix(strconv.FormatUint(n, 10), keepNumberDigits)
}

// Email masks the local part of an address, keeping its first three
// characters when it is longer than that. The domain is kept.
func Email(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return keepPrefix(email, keepEmailChars)
	}

	local := []rune(email[:at])
	if len(local) > keepEmailChars {
		return keepPrefix(string(local), keepEmailChars) + email[at:]
	}
	return strings.Repeat(maskChar, len(local)) + email[at:]
}

func keepPrefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + strings.Repeat(maskChar, len(r)-n)
}
