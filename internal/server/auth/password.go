package auth

import (
	"errors"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for every stored hash.
const PasswordCost = 10

// dummyHash is compared against when no account matches, so a login for an
// unknown email costs as much as one with a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("expense-tracker-dummy-password"), PasswordCost)

// HashPassword returns a salted bcrypt hash of password. Passwords longer
// than 72 bytes are rejected as a validation error.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewValidationError("Password is too long.")
		}
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck runs a comparison whose outcome is discarded.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
