package service

import "regexp"

// Validation messages mirror the original API word for word so existing
// clients keep matching on them.
const (
	msgEmailBlank           = "Email can't be blank"
	msgEmailInvalid         = "Email is invalid"
	msgEmailTaken           = "Email has already been taken"
	msgPasswordTooShort     = "Password is too short (minimum is 6 characters)"
	msgPasswordConfirmation = "Password confirmation doesn't match Password"
	msgTitleBlank           = "Title can't be blank"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}
