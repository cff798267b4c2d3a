// Package phone normalizes free-form phone input into the digit strings
// the allowlist and order records store.
package phone

import "strings"

// MinDigits is the length a US phone number must reach after stripping.
const MinDigits = 10

// Normalize strips every non-digit character from raw.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeLast10 strips non-digits and, when more than ten digits
// remain (e.g. a leading country code), keeps only the last ten. The
// second return reports whether ten digits were reached.
func NormalizeLast10(raw string) (string, bool) {
	digits := Normalize(raw)
	if len(digits) > MinDigits {
		digits = digits[len(digits)-MinDigits:]
	}
	return digits, len(digits) == MinDigits
}
