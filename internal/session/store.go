package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	cache "github.com/patrickmn/go-cache"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
)

// Fixed keys under which the session is persisted, readable across restarts.
const (
	keyToken = "token"
	keyUser  = "user"
)

const profileCacheTTL = 5 * time.Minute

// Store holds the bearer token and user profile in a local JSON file, the
// persistent-storage analog of the browser client. It is the single
// authorization gate: a view is protected exactly when Token() is empty.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage

	// profile cache avoids re-decoding the stored user on every route
	// evaluation; invalidated on Set/Clear.
	memo *cache.Cache
}

// NewStore reads the session file at path. A missing or unreadable file is
// not an error; it just means no session.
func NewStore(path string) *Store {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
		memo: cache.New(profileCacheTTL, 10*time.Minute),
	}
	if raw, err := os.ReadFile(path); err == nil {
		// Corrupt session files are discarded, forcing a fresh login.
		_ = json.Unmarshal(raw, &s.data)
	}
	return s
}

// Token returns the stored access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[keyToken]
	if !ok {
		return ""
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return ""
	}
	return token
}

// User returns the stored profile, or nil when absent.
func (s *Store) User() *model.User {
	if u, ok := s.memo.Get(keyUser); ok {
		user := u.(model.User)
		return &user
	}

	s.mu.RLock()
	raw, ok := s.data[keyUser]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	s.memo.SetDefault(keyUser, user)
	return &user
}

// Set stores the token and profile and persists them.
func (s *Store) Set(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return err
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.data[keyToken] = tokenJSON
	s.data[keyUser] = userJSON
	s.memo.Flush()
	return s.persist()
}

// Clear removes both keys. Called on logout and on any upstream 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, keyToken)
	delete(s.data, keyUser)
	s.memo.Flush()
	return s.persist()
}

// TokenExpiry parses the stored token's exp claim without verifying the
// signature. Display only; the upstream remains the authority and a stale
// token still fails with a 401 there.
func (s *Store) TokenExpiry() (time.Time, error) {
	token := s.Token()
	if token == "" {
		return time.Time{}, errors.New("no session token")
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

func (s *Store) persist() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
