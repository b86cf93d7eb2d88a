package api

import (
	"sync"
	"time"

	"learnhub_client/pkg/kvstore"
	"learnhub_client/pkg/security"
)

// TokenStore holds the bearer token used for every request.
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}

type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryTokenStore) ClearToken() {
	s.SetToken("")
}

// PersistentTokenStore mirrors the token to the durable store so a restart keeps the session.
type PersistentTokenStore struct {
	mem   MemoryTokenStore
	store *kvstore.Store
	now   func() time.Time
}

func NewPersistentTokenStore(store *kvstore.Store) *PersistentTokenStore {
	s := &PersistentTokenStore{store: store, now: time.Now}
	if token := kvstore.Load(store, kvstore.KeyAuthToken, ""); token != "" {
		if security.TokenExpired(token, s.now()) {
			store.Remove(kvstore.KeyAuthToken)
		} else {
			s.mem.SetToken(token)
		}
	}
	return s
}

func (s *PersistentTokenStore) Token() string {
	token := s.mem.Token()
	if token != "" && security.TokenExpired(token, s.now()) {
		s.ClearToken()
		return ""
	}
	return token
}

func (s *PersistentTokenStore) SetToken(token string) {
	s.mem.SetToken(token)
	s.store.Save(kvstore.KeyAuthToken, token)
}

func (s *PersistentTokenStore) ClearToken() {
	s.mem.ClearToken()
	s.store.Remove(kvstore.KeyAuthToken)
}
