// Package sessionclient is a small HTTP client for the API that manages the
// access/refresh token pair transparently. A 403 response triggers a single
// refresh attempt followed by a single retry; a failed refresh ends the
// session.
package sessionclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrUnauthenticated is returned without any network traffic when the
	// store holds no tokens.
	ErrUnauthenticated = errors.New("sessionclient: not authenticated")

	// ErrSessionExpired is returned when a refresh attempt fails. The store
	// has been cleared; the caller must log in again.
	ErrSessionExpired = errors.New("sessionclient: session expired")
)

// APIError carries a non-2xx response through unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the API with bearer authentication. The token pair is
// re-read from the store on every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	// OnSessionExpired, when set, is invoked after a failed refresh has
	// cleared the store. UIs typically use it to redirect to login.
	OnSessionExpired func()
}

func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates with email and password and saves the issued pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp tokenPair
	if err := c.send(ctx, http.MethodPost, "/auth/login", body, &resp, ""); err != nil {
		return err
	}
	return c.store.Save(resp.AccessToken, resp.RefreshToken)
}

// Logout drops the stored session.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Do performs an authenticated request. On a 403 it refreshes the pair once
// and retries once; if the refresh fails the session is over.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	access, refresh, err := c.store.Pair()
	if err != nil {
		return err
	}
	if access == "" {
		return ErrUnauthenticated
	}

	err = c.send(ctx, method, path, in, out, access)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		return err
	}

	access, err = c.refreshPair(ctx, refresh)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, in, out, access)
}

// refreshPair exchanges the refresh token for a new pair and saves it. Any
// failure ends the session: the store is cleared and the hook fires.
func (c *Client) refreshPair(ctx context.Context, refresh string) (string, error) {
	if refresh == "" {
		return "", c.expireSession()
	}

	body := map[string]string{"refresh_token": refresh}
	var resp tokenPair
	if err := c.send(ctx, http.MethodPost, "/auth/refresh", body, &resp, ""); err != nil {
		return "", c.expireSession()
	}

	if err := c.store.Save(resp.AccessToken, resp.RefreshToken); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) expireSession() error {
	_ = c.store.Clear()
	if c.OnSessionExpired != nil {
		c.OnSessionExpired()
	}
	return ErrSessionExpired
}

func (c *Client) send(ctx context.Context, method, path string, in, out any, access string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(r io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(raw)
}
