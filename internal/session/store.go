// Package session persists the authentication token and cached user profile
// between runs, the terminal counterpart of the browser's local storage.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite" // register sqlite driver

	"wayfarer/internal/api"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store is the persisted session.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant session database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wayfarer", "session.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wayfarer", "session.db")
}

// Open opens or creates the session database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the session database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the stored session token, or "" when anonymous.
func (s *Store) Token() string {
	return s.get(keyToken)
}

// SetToken stores the session token.
func (s *Store) SetToken(token string) error {
	return s.set(keyToken, token)
}

// SetUser stores the serialized user profile.
func (s *Store) SetUser(u api.User) error {
	buf, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return s.set(keyUser, string(buf))
}

// CurrentUser returns the cached profile, or nil when absent or malformed.
// Malformed state fails closed: it reads as logged-out profile data, never
// an error.
func (s *Store) CurrentUser() *api.User {
	raw := s.get(keyUser)
	if raw == "" {
		return nil
	}
	var u api.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// IsAuthenticated reports whether a usable token is stored. A token whose
// exp claim has passed counts as absent; the server stays authoritative,
// this just avoids a guaranteed 401 round trip.
func (s *Store) IsAuthenticated() bool {
	tok := s.Token()
	return tok != "" && !tokenExpired(tok, time.Now())
}

// Clear removes the token and profile together.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM session")
	return err
}

func (s *Store) get(key string) string {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) || err != nil {
		return ""
	}
	return value
}

func (s *Store) set(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO session (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, now,
	)
	return err
}

// tokenExpired reads the token's exp claim without verifying the signature.
// Tokens that are not JWTs or carry no exp claim are treated as unexpired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
