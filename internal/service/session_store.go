package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-quiz/internal/cache"
	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/logger"

	"go.uber.org/zap"
)

// ErrSessionStateNotFound is returned when no snapshot exists for a session.
var ErrSessionStateNotFound = errors.New("session state not found in cache")

// SessionStore persists quiz session snapshots.
type SessionStore interface {
	Save(ctx context.Context, state *domain.QuizState) error
	Load(ctx context.Context, sessionID string) (*domain.QuizState, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionStoreImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore stores snapshots as JSON in cache, each expiring after ttl.
func NewSessionStore(cache domain.Cache, ttl time.Duration) SessionStore {
	if cache == nil {
		logger.Get().Warn("SessionStore initialized with nil cache. Sessions will not be persisted.")
		return &noopSessionStore{}
	}
	return &sessionStoreImpl{
		cache: cache,
		ttl:   ttl,
	}
}

func (s *sessionStoreImpl) Save(ctx context.Context, state *domain.QuizState) error {
	if state == nil || state.SessionID == "" {
		return domain.NewInvalidInputError("cannot persist a session without an id")
	}

	key := cache.SessionStateKey(state.SessionID)
	data, err := json.Marshal(state)
	if err != nil {
		logger.Get().Error("Failed to marshal session state", zap.Error(err), zap.String("sessionID", state.SessionID))
		return domain.NewInternalError("failed to marshal session state", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to persist session state", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set session state for key %s", key), err)
	}
	logger.Get().Debug("Persisted session state",
		zap.String("key", key),
		zap.String("status", string(state.Status)),
		zap.Duration("ttl", s.ttl))
	return nil
}

func (s *sessionStoreImpl) Load(ctx context.Context, sessionID string) (*domain.QuizState, error) {
	key := cache.SessionStateKey(sessionID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Session state cache miss", zap.String("key", key))
			return nil, ErrSessionStateNotFound
		}
		logger.Get().Error("Failed to get session state from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get session state for key %s", key), err)
	}
	if data == "" {
		return nil, ErrSessionStateNotFound
	}

	var state domain.QuizState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		logger.Get().Error("Failed to unmarshal session state", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal session state for key %s", key), err)
	}
	if state.UserAnswers == nil {
		state.UserAnswers = map[int][]string{}
	}
	return &state, nil
}

func (s *sessionStoreImpl) Delete(ctx context.Context, sessionID string) error {
	key := cache.SessionStateKey(sessionID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Error("Failed to delete session state", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to delete session state for key %s", key), err)
	}
	return nil
}

// noopSessionStore forgets everything; used when no cache is configured.
type noopSessionStore struct{}

func (s *noopSessionStore) Save(ctx context.Context, state *domain.QuizState) error {
	return nil
}

func (s *noopSessionStore) Load(ctx context.Context, sessionID string) (*domain.QuizState, error) {
	return nil, ErrSessionStateNotFound
}

func (s *noopSessionStore) Delete(ctx context.Context, sessionID string) error {
	return nil
}
