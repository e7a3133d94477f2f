package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	lower        = regexp.MustCompile("[a-z]")
	upper        = regexp.MustCompile("[A-Z]")
	digit        = regexp.MustCompile("[0-9]")
	special      = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidateUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= 3 && n <= 30 && !strings.ContainsAny(username, " @")
}

// ValidatePassword requires eight characters with a lower case letter, an
// upper case letter, a digit and a symbol.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lower.MatchString(password) &&
		upper.MatchString(password) &&
		digit.MatchString(password) &&
		special.MatchString(password)
}
