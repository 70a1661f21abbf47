package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
	"github.com/anthonycdp/autovision-project-sub001/internal/pkg/hash"
)

// AuthService implements registration, login, and silent session renewal.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	hasher   *hash.Hasher
	activity ports.ActivityLogger
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, hasher *hash.Hasher, activity ports.ActivityLogger, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, activity: activity, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Role:         role,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, ports.ActivityInput{
		ActorID:      created.ID,
		Action:       "user.registered",
		ResourceType: domain.ResourceUser,
		ResourceID:   created.ID,
	})

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	s.activity.Record(ctx, ports.ActivityInput{
		ActorID:      user.ID,
		Action:       "user.login",
		ResourceType: domain.ResourceUser,
		ResourceID:   user.ID,
	})

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The new pair
// carries the user's current state, so a role changed since issuance takes
// effect here.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return domain.TokenPair{}, domain.ErrTokenInvalid
	}

	return s.tokens.IssuePair(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
