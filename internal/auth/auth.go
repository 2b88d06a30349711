// Package auth provides the thin seat-claim contract spec.md §9 anticipates
// ("an optional room password, not a full account system is in scope"),
// grounded on apps/server/internal/auth/session.go's bcrypt-hashed secret
// handling, trimmed down from full session/token issuance since spec.md's
// Non-goals exclude account authentication.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a room's optional join password, mirroring
// session.go's bcrypt.GenerateFromPassword usage at the default cost.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the bcrypt hash produced by
// HashPassword.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
