package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// passwordSymbols is the punctuation a strong password must draw from.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// IsValidEmail checks the local@domain.tld shape only; no DNS or mailbox lookup.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsStrongPassword requires at least 8 characters with a letter, a digit and
// one of passwordSymbols.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}

	var letter, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	return letter && digit && symbol
}
