package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

// SessionStore holds the single upstream OAuth session of the process.
type SessionStore struct {
	mu      sync.RWMutex
	oauth   *oauth2.Config
	baseCtx context.Context
	token   *oauth2.Token
	source  oauth2.TokenSource
}

// NewSessionStore constructs an empty store. baseCtx scopes token refreshes
// and should live as long as the process.
func NewSessionStore(baseCtx context.Context, oauth *oauth2.Config) *SessionStore {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &SessionStore{oauth: oauth, baseCtx: baseCtx}
}

// Set installs a token. Refreshes happen transparently through the OAuth
// config when the token carries a refresh token.
func (s *SessionStore) Set(token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == nil {
		s.token, s.source = nil, nil
		return
	}
	s.token = token
	if s.oauth != nil {
		s.source = oauth2.ReuseTokenSource(token, s.oauth.TokenSource(s.baseCtx, token))
	} else {
		s.source = oauth2.StaticTokenSource(token)
	}
}

// Clear drops the session.
func (s *SessionStore) Clear() {
	s.Set(nil)
}

// TokenSource returns the session's token source or ErrNotAuthenticated.
func (s *SessionStore) TokenSource() (oauth2.TokenSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.source == nil {
		return nil, appErrors.ErrNotAuthenticated
	}
	return s.source, nil
}

// Status reports whether a session is present and when its access token expires.
func (s *SessionStore) Status() models.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := models.SessionStatus{Authenticated: s.source != nil}
	if s.token != nil && !s.token.Expiry.IsZero() {
		expiry := s.token.Expiry.UTC().Format(time.RFC3339)
		status.Expiry = &expiry
	}
	return status
}
