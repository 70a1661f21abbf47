// Package hash provides one-way password hashing backed by bcrypt.
package hash

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher produces and verifies salted password digests. The cost is fixed
// at construction; changing it requires re-hashing all stored digests.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost. Costs outside bcrypt's
// valid range fall back to DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted one-way digest of plaintext. Fails only on resource
// exhaustion or an over-long password.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. The comparison is
// timing-safe; a mismatch or malformed digest yields false, never an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
