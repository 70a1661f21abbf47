package ports

import (
	"context"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

// AuthService defines registration, sign-in, and session renewal use cases.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	// Refresh exchanges a valid refresh token for a new pair. Idempotent:
	// each call with a still-valid refresh token yields a fresh valid pair.
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}
