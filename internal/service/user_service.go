package service

import (
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	users   *repository.UserRepository
	session *SessionService
	policy  *AccessPolicy
}

func NewUserService(users *repository.UserRepository, session *SessionService, policy *AccessPolicy) *UserService {
	return &UserService{users: users, session: session, policy: policy}
}

// AwardPoints adds points to a user and returns the updated user. Non-positive awards are ignored.
func (s *UserService) AwardPoints(userID string, points int) (model.User, error) {
	if points <= 0 {
		return s.Get(userID)
	}
	u, ok := s.update(userID, func(u *model.User) { u.Points += points })
	if !ok {
		return model.User{}, util.ErrUserNotFound
	}
	s.session.Refresh(u)
	logger.Log.Debug("points awarded", zap.String("user", userID), zap.Int("points", points), zap.Int("total", u.Points))
	return u, nil
}

// AwardBadge appends badge unless the user already holds it. Badges are never removed.
func (s *UserService) AwardBadge(userID string, badge model.Badge) (model.User, bool) {
	awarded := false
	u, ok := s.update(userID, func(u *model.User) {
		if u.HasBadge(badge.ID) {
			return
		}
		now := time.Now()
		badge.EarnedAt = &now
		u.Badges = append(u.Badges, badge)
		awarded = true
	})
	if !ok {
		return model.User{}, false
	}
	if awarded {
		s.session.Refresh(u)
		logger.Log.Info("badge awarded", zap.String("user", userID), zap.String("badge", badge.ID))
	}
	return u, awarded
}

func (s *UserService) ListUsers() ([]model.User, error) {
	if !s.policy.CanManageUsers() {
		return nil, util.ErrPermissionDenied
	}
	users := s.users.List()
	for i := range users {
		users[i] = users[i].Public()
	}
	return users, nil
}

func (s *UserService) ChangeRole(userID string, role model.UserRole) (model.User, error) {
	if !s.policy.CanManageUsers() {
		return model.User{}, util.ErrPermissionDenied
	}
	if !role.Valid() {
		return model.User{}, util.NewValidationError(util.FieldError{Field: "role", Error: "role must be one of [admin instructor learner guest]"})
	}
	u, ok := s.users.Update(userID, func(u *model.User) { u.Role = role })
	if !ok {
		return model.User{}, util.ErrUserNotFound
	}
	s.session.Refresh(u)
	return u.Public(), nil
}

// AdjustPoints is the admin-only correction path; it is the only way points can go down.
func (s *UserService) AdjustPoints(userID string, delta int) (model.User, error) {
	if !s.policy.CanManageUsers() {
		return model.User{}, util.ErrPermissionDenied
	}
	u, ok := s.users.Update(userID, func(u *model.User) {
		u.Points += delta
		if u.Points < 0 {
			u.Points = 0
		}
	})
	if !ok {
		return model.User{}, util.ErrUserNotFound
	}
	s.session.Refresh(u)
	return u.Public(), nil
}

func (s *UserService) UpdateProfile(update model.ProfileUpdate) (model.User, error) {
	current, ok := s.session.Current()
	if !ok {
		return model.User{}, util.ErrNotAuthenticated
	}
	if err := util.ValidateStruct(update); err != nil {
		return model.User{}, err
	}
	u, found := s.update(current.ID, func(u *model.User) { update.Apply(u) })
	if !found {
		return model.User{}, util.ErrUserNotFound
	}
	s.session.Refresh(u)
	return u.Public(), nil
}

// Get returns the registry entry for userID.
func (s *UserService) Get(userID string) (model.User, error) {
	u, ok := s.users.FindByID(userID)
	if !ok {
		return s.adoptSession(userID)
	}
	return u, nil
}

func (s *UserService) update(userID string, fn func(*model.User)) (model.User, bool) {
	if u, ok := s.users.Update(userID, fn); ok {
		return u, true
	}
	if _, err := s.adoptSession(userID); err != nil {
		return model.User{}, false
	}
	return s.users.Update(userID, fn)
}

// adoptSession registers the session snapshot when the logged-in user is missing from the registry,
// which happens after a remote login whose registry entry was lost.
func (s *UserService) adoptSession(userID string) (model.User, error) {
	cur, ok := s.session.Current()
	if !ok || cur.ID != userID {
		return model.User{}, util.ErrUserNotFound
	}
	return s.users.Upsert(cur), nil
}
