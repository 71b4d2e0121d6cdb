// Package auth wraps the authentication endpoints and keeps the session
// store in sync with them.
package auth

import (
	"context"
	"fmt"

	"wayfarer/internal/api"
	"wayfarer/internal/session"
)

// Service performs signup, login, and logout against the remote API.
type Service struct {
	api      *api.Client
	sessions *session.Store
}

// NewService creates an auth service over the given gateway and session store.
func NewService(client *api.Client, sessions *session.Store) *Service {
	return &Service{api: client, sessions: sessions}
}

// Signup creates an account. It does not log the user in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*api.User, error) {
	var u api.User
	err := s.api.Post(ctx, "/api/auth/signup", api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a token, persists it, then fetches and
// persists the user profile. Both are stored before Login returns.
func (s *Service) Login(ctx context.Context, email, password string) (*api.User, error) {
	var tok api.Token
	err := s.api.Post(ctx, "/api/auth/login", api.LoginRequest{
		Email:    email,
		Password: password,
	}, &tok)
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("auth: login response carried no token")
	}

	if err := s.sessions.SetToken(tok.AccessToken); err != nil {
		return nil, fmt.Errorf("auth: persisting token: %w", err)
	}

	u, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SetUser(*u); err != nil {
		return nil, fmt.Errorf("auth: persisting profile: %w", err)
	}
	return u, nil
}

// Profile fetches the current user from the API.
func (s *Service) Profile(ctx context.Context) (*api.User, error) {
	var u api.User
	if err := s.api.Get(ctx, "/api/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout clears the persisted token and profile. No server call is made;
// the token simply stops being presented.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}
