package helper

import "unicode"

const minPasswordLength = 8

// IsStrongPassword enforces the registration password policy: at least 8
// characters with one lowercase, one uppercase, one digit and one symbol.
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
