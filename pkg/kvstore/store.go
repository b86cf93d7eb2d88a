package kvstore

import (
	"context"
	"encoding/json"
	"time"

	"learnhub_client/pkg/logger"

	"go.uber.org/zap"
)

// 持久化 key
const (
	KeyCurrentUser = "currentUser"
	KeyCourses     = "courses"
	KeyEnrollments = "enrollments"
	KeyUsers       = "users"
	KeyReviews     = "reviews"
	KeyAuthToken   = "authToken"
)

const opTimeout = 5 * time.Second

// Store layers JSON encoding and corruption recovery over a Backend.
type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load decodes key into dst. It reports false when the key is absent, unreadable or corrupted;
// corrupted entries are deleted so the next Load sees them as absent.
func (s *Store) Load(key string, dst interface{}) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("kvstore read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Log.Warn("kvstore entry corrupted, clearing", zap.String("key", key), zap.Error(err))
		if err := s.backend.Delete(ctx, key); err != nil {
			logger.Log.Warn("kvstore delete failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// Save never reports failures to the caller.
func (s *Store) Save(key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		logger.Log.Warn("kvstore encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.backend.Set(ctx, key, string(b)); err != nil {
		logger.Log.Warn("kvstore write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.backend.Delete(ctx, key); err != nil {
		logger.Log.Warn("kvstore delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Load returns the decoded value under key, or fallback.
func Load[T any](s *Store, key string, fallback T) T {
	var v T
	if !s.Load(key, &v) {
		return fallback
	}
	return v
}
