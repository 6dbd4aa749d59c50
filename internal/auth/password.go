package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func ComparePassword(hash, password string) error {
	if hash == "" || password == "" {
		return errors.New("missing hash or password")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AdminCredentials holds the configured admin login. The plaintext password
// from the environment is hashed once and then dropped.
type AdminCredentials struct {
	user string
	hash string
}

func NewAdminCredentials(user, password string) (*AdminCredentials, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &AdminCredentials{user: user, hash: hash}, nil
}

func (c *AdminCredentials) Check(user, password string) bool {
	if c == nil {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.user)) == 1
	passOK := ComparePassword(c.hash, password) == nil
	return userOK && passOK
}
