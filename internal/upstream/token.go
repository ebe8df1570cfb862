package upstream

import (
	"context"
	"sync"
)

// TokenSource supplies a bearer token for platform calls made on the
// gateway's own behalf (as opposed to calls forwarding a staff token).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	// Invalidate discards the cached token so the next call logs in again.
	Invalidate()
}

// PasswordTokenSource logs in with a service account and caches the
// resulting token until it is invalidated.
type PasswordTokenSource struct {
	client   *Client
	username string
	password string

	mu    sync.Mutex
	token string
}

func NewPasswordTokenSource(client *Client, username, password string) *PasswordTokenSource {
	return &PasswordTokenSource{
		client:   client,
		username: username,
		password: password,
	}
}

func (s *PasswordTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	token, err := s.client.Login(ctx, s.username, s.password)
	if err != nil {
		return "", err
	}
	s.token = token
	return token, nil
}

func (s *PasswordTokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// StaticTokenSource returns a fixed token; used in tests and when a
// token is supplied through configuration.
type StaticTokenSource string

func (s StaticTokenSource) Token(ctx context.Context) (string, error) { return string(s), nil }

func (s StaticTokenSource) Invalidate() {}
