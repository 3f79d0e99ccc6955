// Package auth holds credentials helpers shared by the API and the bot.
package auth

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxUsernameLength matches the users.username column
const MaxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// emailPattern is the loose check the bot uses to tell an email login from a username
var emailPattern = regexp.MustCompile(`^.+@((\w+-+)|(\w+\.))*\w{1,63}\.[a-zA-Z]{2,6}$`)

// ValidUsername reports whether s is a syntactically valid username
func ValidUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 0 && n <= MaxUsernameLength && usernamePattern.MatchString(s)
}

// ValidEmail reports whether s is a single bare email address
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	return emailPattern.MatchString(s)
}

// LooksLikeEmail reports whether a login value should be sent as email
func LooksLikeEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPassword reports whether password is long enough
func ValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}
