package wizard

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidBusinessName requires at least 2 characters after trimming whitespace
func ValidBusinessName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// ValidPhone accepts any formatting (dashes, dots, spaces, parentheses) and
// validates on the digits alone: exactly 10, or 11 with a leading country
// code 1.
func ValidPhone(phone string) bool {
	var digits []byte
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) == 10 {
		return true
	}
	return len(digits) == 11 && digits[0] == '1'
}

// ValidEmail checks basic shape only: something@something.something
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizePhone strips formatting and a leading country code, returning the
// bare 10 digits. Invalid phones are returned unchanged.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b.WriteByte(phone[i])
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	if len(digits) == 10 {
		return digits
	}
	return phone
}
