package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultSaltRound is the bcrypt cost used when none is configured.
const DefaultSaltRound = 10

// HashPassword returns the bcrypt hash of plain. Costs below bcrypt.MinCost
// fall back to DefaultSaltRound.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultSaltRound
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
