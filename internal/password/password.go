package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher derives bcrypt hashes at a fixed cost.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether candidate matches the stored hash.
func (h *Hasher) Verify(hash, candidate string) bool {
	return VerifyPassword(hash, candidate)
}

// VerifyPassword is independent of any user type; it only needs the stored hash.
func VerifyPassword(hash, candidate string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
