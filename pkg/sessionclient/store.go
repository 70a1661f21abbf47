package sessionclient

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// TokenStore holds the session's token pair between calls. Implementations
// must tolerate concurrent use; the client re-reads the store on every
// request so external updates (another process refreshing) are picked up.
type TokenStore interface {
	// Pair returns the current tokens. Empty strings with a nil error mean
	// no session is stored.
	Pair() (access, refresh string, err error)
	Save(access, refresh string) error
	Clear() error
}

// MemStore keeps tokens in memory. Useful for tests and short-lived tools.
type MemStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Pair() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *MemStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *MemStore) Clear() error {
	return s.Save("", "")
}

type storedPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileStore persists the token pair as a JSON file readable only by the
// owning user.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Pair() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("read token file: %w", err)
	}

	var pair storedPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return "", "", fmt.Errorf("decode token file: %w", err)
	}
	return pair.AccessToken, pair.RefreshToken, nil
}

func (s *FileStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(storedPair{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
