package util

import (
	"regexp"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_\-]{3,32}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// IsValidUsername reports whether a username is 3-32 chars of
// letters, digits, underscore or dash.
func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// IsValidEmail reports whether the string looks like an email address.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
