package user

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/eduroot/core"
)

// HashPassword returns the bcrypt hash of pwd; each call uses a fresh salt.
func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", core.NewValidationError(err, core.FieldError{Field: "password", Error: pwdMaxBytesText})
		}
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}

// VerifyPassword reports whether pwd matches hash. A malformed hash never matches.
func VerifyPassword(pwd, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}
