// Package session owns the authentication token: one in-memory slot backed
// by a credentials file, so a fresh process starts logged in when a prior
// one logged in.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	credFileName = "credentials.json"

	// EnvToken overrides the credentials file when set.
	EnvToken = "GQTODO_TOKEN"
)

// TokenInfo is the persisted shape of the credentials file.
type TokenInfo struct {
	Token     string    `json:"token"`
	Source    string    `json:"source"`     // "env" | "file"
	CreatedAt time.Time `json:"created_at"` // when we saved to file
}

// Store is the single owner of the session token. Set persists on every
// transition: a non-empty token is written to the credentials file, an empty
// one deletes it. Everything else only reads or asks for a replacement.
type Store struct {
	mu    sync.RWMutex
	token string
	dir   string
	subs  []func(token string)
}

// DefaultDir returns the per-user credentials directory (~/.gqtodo).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".gqtodo"), nil
}

// Open loads the persisted token (if any) and returns a ready store.
func Open() (*Store, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return OpenDir(dir)
}

// OpenDir is Open with an explicit credentials directory.
func OpenDir(dir string) (*Store, error) {
	s := &Store{dir: dir}
	ti, err := readCredentials(dir)
	if err != nil {
		return nil, err
	}
	if ti != nil {
		s.token = ti.Token
	}
	return s, nil
}

// Token returns the current in-memory token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a token is present.
func (s *Store) LoggedIn() bool { return s.Token() != "" }

// Set replaces the token. A non-empty token is persisted under the fixed
// credentials file; an empty token removes it. The side effect runs on every
// transition, not only at startup. Subscribers are notified after the
// persistence attempt.
func (s *Store) Set(token string) error {
	token = stripBearer(strings.TrimSpace(token))

	s.mu.Lock()
	s.token = token
	subs := s.subs
	s.mu.Unlock()

	var err error
	if token == "" {
		err = deleteCredentials(s.dir)
	} else {
		err = writeCredentials(s.dir, token)
	}
	for _, fn := range subs {
		fn(token)
	}
	return err
}

// Subscribe registers fn to run after every transition. Used by the view
// layer to redraw; not safe to call concurrently with Set.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Info returns the persisted metadata, or nil when logged out. The env
// override wins over the file, same as PersistedToken.
func (s *Store) Info() (*TokenInfo, error) {
	return readCredentials(s.dir)
}

// EnvSourced reports whether the active token comes from the environment
// override. Set cannot clear such a token, so logout flows check this first.
func (s *Store) EnvSourced() bool {
	ti, err := readCredentials(s.dir)
	return err == nil && ti != nil && ti.Source == "env"
}

// PersistedToken re-reads the token from durable storage. The transport
// layer calls this before every request so a token set after the client was
// built is still picked up.
func (s *Store) PersistedToken() string {
	ti, err := readCredentials(s.dir)
	if err != nil || ti == nil {
		return ""
	}
	return ti.Token
}

func credPath(dir string) string {
	return filepath.Join(dir, credFileName)
}

func readCredentials(dir string) (*TokenInfo, error) {
	// 1) env override
	env := strings.TrimSpace(os.Getenv(EnvToken))
	if env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	// 2) file
	b, err := os.ReadFile(credPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	return &ti, nil
}

func writeCredentials(dir, token string) error {
	// ensure the directory exists with 0700
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	ti := TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// owner-only: the token is a credential
	if err := os.WriteFile(credPath(dir), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func deleteCredentials(dir string) error {
	if err := os.Remove(credPath(dir)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
