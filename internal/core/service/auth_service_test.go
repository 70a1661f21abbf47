package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
	"github.com/anthonycdp/autovision-project-sub001/internal/pkg/hash"
)

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u-%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

// recordLogger captures activity entries for assertions.
type recordLogger struct {
	entries []ports.ActivityInput
}

func (l *recordLogger) Record(_ context.Context, in ports.ActivityInput) {
	l.entries = append(l.entries, in)
}

func (l *recordLogger) RecordFieldChange(ctx context.Context, resourceID, actorID, action string, changes []domain.FieldChange, meta ports.RequestMeta) {
	l.Record(ctx, ports.ActivityInput{
		ActorID:      actorID,
		Action:       action,
		ResourceType: domain.ResourceVehicle,
		ResourceID:   resourceID,
		Detail:       map[string]any{"changes": changes},
		Meta:         meta,
	})
}

func newAuthService(repo *stubUserRepo) *AuthService {
	tokens := NewTokenService("secret", time.Minute, time.Hour)
	return NewAuthService(repo, tokens, hash.New(4), &recordLogger{}, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123", domain.RoleCommon)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if user.Role != domain.RoleCommon {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "", "a@example.com", "pass", domain.RoleCommon); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bob", "b@example.com", "pass", domain.Role("wrong")); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "Bob", "bob@example.com", "pass", domain.RoleCommon)
	if _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "pass2", domain.RoleCommon); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, pair, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := svc.tokens.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("issued access token does not verify: %v", err)
	}
	if claims.Role != domain.RoleAdmin || claims.UserID != user.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass", domain.RoleCommon)
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	// Unknown users get the same error as a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "Erin", "erin@example.com", "pass", domain.RoleCommon)
	_, pair, err := svc.Login(context.Background(), "erin@example.com", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	renewed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := svc.tokens.VerifyAccess(renewed.AccessToken); err != nil {
		t.Fatalf("renewed access token does not verify: %v", err)
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "Frank", "frank@example.com", "pass", domain.RoleCommon)
	_, pair, _ := svc.Login(context.Background(), "frank@example.com", "pass")

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access token, got %v", err)
	}
}
