package ports

import (
	"time"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

// IdentityClaims is the decoded payload of a token: who the bearer is and
// what they may do. Claims reflect the user at issuance time; role changes
// do not propagate until re-issuance.
type IdentityClaims struct {
	UserID    string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-limited token pairs.
// Verification is purely cryptographic: there is no server-side revocation
// store, so a leaked refresh token stays valid until natural expiry.
type TokenService interface {
	// IssuePair signs an access/refresh pair from the user's identity.
	IssuePair(user *domain.User) (domain.TokenPair, error)
	// VerifyAccess validates an access token. Returns domain.ErrTokenExpired
	// past expiry and domain.ErrTokenInvalid on any other rejection.
	VerifyAccess(token string) (*IdentityClaims, error)
	// VerifyRefresh validates a refresh token with the same error contract.
	VerifyRefresh(token string) (*IdentityClaims, error)
}
