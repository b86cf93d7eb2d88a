package service

import (
	"sync"

	"learnhub_client/internal/model"
	"learnhub_client/pkg/kvstore"
)

// SessionService owns the current user. The only transitions are Anonymous -> Authenticated on
// login/registration and back on logout.
type SessionService struct {
	mu    sync.RWMutex
	user  *model.User
	store *kvstore.Store
}

func NewSessionService(store *kvstore.Store) *SessionService {
	s := &SessionService{store: store}
	if store != nil {
		var u model.User
		if store.Load(kvstore.KeyCurrentUser, &u) && u.ID != "" {
			s.user = &u
		}
	}
	return s
}

func (s *SessionService) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return s.user.Clone(), true
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *SessionService) Set(u model.User) {
	pub := u.Public()
	s.mu.Lock()
	s.user = &pub
	s.mu.Unlock()
	s.persist(pub)
}

// Refresh replaces the snapshot when u is the logged-in user.
func (s *SessionService) Refresh(u model.User) {
	s.mu.Lock()
	if s.user == nil || s.user.ID != u.ID {
		s.mu.Unlock()
		return
	}
	pub := u.Public()
	s.user = &pub
	s.mu.Unlock()
	s.persist(pub)
}

func (s *SessionService) Clear() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if s.store != nil {
		s.store.Remove(kvstore.KeyCurrentUser)
	}
}

func (s *SessionService) persist(u model.User) {
	if s.store != nil {
		s.store.Save(kvstore.KeyCurrentUser, u)
	}
}
