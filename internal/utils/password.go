package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash of plain.  A cost outside the
// range bcrypt supports falls back to bcrypt.DefaultCost, so a
// misconfigured BCRYPT_COST degrades instead of failing registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(b), err
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
