package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// DefaultAccessTTL and DefaultRefreshTTL apply when the configured
	// durations are zero or negative.
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// tokenClaims is the signed payload carried by both tokens of a pair.
// TokenType discriminates access from refresh so one can never stand in
// for the other.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    string      `json:"uid"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	TokenType string      `json:"typ"`
}

// TokenService issues and verifies HS256-signed access/refresh pairs.
// Stateless by design: there is no revocation store, so verification is
// purely cryptographic and a leaked refresh token stays valid until expiry.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssuePair signs two independent tokens from the same identity: a
// short-lived access token and a long-lived refresh token.
func (s *TokenService) IssuePair(user *domain.User) (domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.sign(user, tokenTypeAccess, now, now.Add(s.accessTTL))
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.sign(user, tokenTypeRefresh, now, now.Add(s.refreshTTL))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns its identity claims.
func (s *TokenService) VerifyAccess(token string) (*ports.IdentityClaims, error) {
	return s.verify(token, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its identity claims.
func (s *TokenService) VerifyRefresh(token string) (*ports.IdentityClaims, error) {
	return s.verify(token, tokenTypeRefresh)
}

func (s *TokenService) sign(user *domain.User, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *TokenService) verify(token, wantType string) (*ports.IdentityClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid || claims.TokenType != wantType || !claims.Role.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	identity := &ports.IdentityClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
