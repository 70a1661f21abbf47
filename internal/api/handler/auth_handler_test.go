package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
			if name != "Alice" || role != domain.RoleCommon {
				t.Fatalf("unexpected args: %s %s", name, role)
			}
			return &domain.User{ID: "u-1", Name: name, Email: email, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","role":"common"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["name"] != "Alice" || user["role"] != "common" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1","role":"common"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/register", `{"name":"Bob","role":"superuser"}`)

	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			pair := domain.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}
			return &domain.User{ID: "u-1", Email: email, Role: domain.RoleAdmin}, pair, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-1" || resp["refresh_token"] != "refresh-1" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
			return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad-password"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
			if refreshToken != "refresh-1" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return domain.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh-1"}`)

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-2" || resp["refresh_token"] != "refresh-2" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
			return domain.TokenPair{}, domain.ErrTokenInvalid
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"garbage"}`)

	err := handler.Refresh(c)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
