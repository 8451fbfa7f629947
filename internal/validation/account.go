package validation

import (
	"regexp"
	"unicode"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// RegistrationInput carries the fields submitted by the signup form.
type RegistrationInput struct {
	Username string
	Email    string
	Password string
}

// ValidateRegistration checks a registration payload and returns all field
// violations. Uniqueness is enforced by the store, not here.
func ValidateRegistration(in RegistrationInput) []FieldError {
	var errs []FieldError

	if !usernameRegex.MatchString(in.Username) {
		errs = append(errs, FieldError{"username", "must be 3-30 characters of letters, digits, or underscores"})
	}

	if !emailRegex.MatchString(in.Email) {
		errs = append(errs, FieldError{"email", "must be a valid email address"})
	}

	errs = append(errs, validatePassword(in.Password)...)

	return errs
}

func validatePassword(password string) []FieldError {
	var errs []FieldError

	if len(password) < 8 {
		errs = append(errs, FieldError{"password", "must be at least 8 characters long"})
		return errs
	}
	if len(password) > 128 {
		errs = append(errs, FieldError{"password", "must not exceed 128 characters"})
		return errs
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		errs = append(errs, FieldError{"password", "must contain at least one letter"})
	}
	if !hasDigit {
		errs = append(errs, FieldError{"password", "must contain at least one digit"})
	}

	return errs
}
