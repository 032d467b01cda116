package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

type sessionStore interface {
	Status() models.SessionStatus
	Clear()
}

// SessionService reports and ends the upstream classroom session.
type SessionService struct {
	store  sessionStore
	cache  *CacheService
	logger *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(store sessionStore, cache *CacheService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, cache: cache, logger: logger}
}

// Status reports whether a session is present.
func (s *SessionService) Status(_ context.Context) models.SessionStatus {
	if s.store == nil {
		return models.SessionStatus{}
	}
	return s.store.Status()
}

// Authenticated reports whether a session is present.
func (s *SessionService) Authenticated(ctx context.Context) bool {
	return s.Status(ctx).Authenticated
}

// Logout drops the session and every cached provider payload, since cached
// data was read with the dropped credentials.
func (s *SessionService) Logout(ctx context.Context) error {
	if s.store != nil {
		s.store.Clear()
	}
	if err := s.cache.Clear(ctx, ""); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear cache")
	}
	s.logger.Info("classroom session cleared")
	return nil
}
