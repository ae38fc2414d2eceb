package ports

import (
	"errors"
	"time"
)

// ErrInvalidToken covers malformed, expired, forged and revoked tokens.
var ErrInvalidToken = errors.New("invalid token")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// Claims are the identity facts carried by an access token.
type Claims struct {
	UserID    string
	IsAdmin   bool
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(userID string, isAdmin bool) (token string, expiresAt time.Time, err error)
	Verify(token string) (*Claims, error)
}
