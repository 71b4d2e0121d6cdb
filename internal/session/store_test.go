package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wayfarer/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ada@example.com",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if s.Token() != "" {
		t.Error("fresh store should have no token")
	}
	if s.IsAuthenticated() {
		t.Error("fresh store should not be authenticated")
	}

	if err := s.SetToken("opaque-token"); err != nil {
		t.Fatal(err)
	}
	if s.Token() != "opaque-token" {
		t.Errorf("Token = %q", s.Token())
	}
	// Non-JWT tokens count on presence alone.
	if !s.IsAuthenticated() {
		t.Error("stored token should authenticate")
	}
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if s.CurrentUser() != nil {
		t.Error("fresh store should have no user")
	}

	u := api.User{ID: 7, Name: "Ada", Email: "ada@example.com"}
	if err := s.SetUser(u); err != nil {
		t.Fatal(err)
	}

	got := s.CurrentUser()
	if got == nil {
		t.Fatal("CurrentUser = nil after SetUser")
	}
	if got.ID != 7 || got.Email != "ada@example.com" {
		t.Errorf("CurrentUser = %+v", got)
	}
}

func TestStore_MalformedUserFailsClosed(t *testing.T) {
	s := openTestStore(t)
	if err := s.set(keyUser, "{not json"); err != nil {
		t.Fatal(err)
	}
	if got := s.CurrentUser(); got != nil {
		t.Errorf("CurrentUser = %+v, want nil for malformed profile", got)
	}
}

func TestStore_ClearRemovesTokenAndUser(t *testing.T) {
	s := openTestStore(t)
	if err := s.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUser(api.User{ID: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Token() != "" || s.CurrentUser() != nil || s.IsAuthenticated() {
		t.Error("Clear left session state behind")
	}
}

func TestStore_ExpiredJWTCountsAsAbsent(t *testing.T) {
	s := openTestStore(t)
	if err := s.SetToken(signedToken(t, time.Now().Add(-time.Hour))); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("expired JWT should not authenticate")
	}

	if err := s.SetToken(signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if !s.IsAuthenticated() {
		t.Error("live JWT should authenticate")
	}
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	_ = s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if s2.Token() != "tok" {
		t.Errorf("Token = %q after reopen, want tok", s2.Token())
	}
}
