package search

import "strings"

// PostalCodeLength is the width of a canonical Italian postal code (CAP).
const PostalCodeLength = 5

// NormalizePostalCode reduces raw to its canonical five-digit form.
//
// Every character that is not an ASCII digit is dropped. If no digits remain
// the second result is false. Otherwise the digits are left-padded with zeros
// to five characters and then cut to the first five, so "1234567" becomes
// "12345": longer codes are truncated, not rejected.
func NormalizePostalCode(raw string) (string, bool) {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}

	digits := b.String()
	if digits == "" {
		return "", false
	}
	if len(digits) < PostalCodeLength {
		digits = strings.Repeat("0", PostalCodeLength-len(digits)) + digits
	}
	return digits[:PostalCodeLength], true
}
