package service

import (
	"errors"
	"testing"
	"time"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "u-1",
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, time.Hour)

	pair, err := svc.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens are identical")
	}

	access, err := svc.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if access.UserID != "u-1" || access.Email != "alice@example.com" || access.Role != domain.RoleAdmin {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if refresh.UserID != "u-1" || refresh.Role != domain.RoleAdmin {
		t.Fatalf("unexpected refresh claims: %+v", refresh)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, time.Hour)
	user := testUser()

	signed, err := svc.sign(user, tokenTypeAccess, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := svc.VerifyAccess(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Minute, time.Hour)
	verifier := NewTokenService("secret-b", time.Minute, time.Hour)

	pair, _ := issuer.IssuePair(testUser())
	if _, err := verifier.VerifyAccess(pair.AccessToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_TypeConfusion(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, time.Hour)
	pair, _ := svc.IssuePair(testUser())

	// A refresh token must never authorize a request, and vice versa.
	if _, err := svc.VerifyAccess(pair.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := svc.VerifyRefresh(pair.AccessToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, time.Hour)
	if _, err := svc.VerifyAccess("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
