package repository

import (
	"strings"

	"learnhub_client/internal/model"
	"learnhub_client/pkg/kvstore"
)

// UserRepository is the local user registry used when the backend is unreachable.
type UserRepository struct {
	t *table[model.User]
}

func NewUserRepository(store *kvstore.Store) *UserRepository {
	return &UserRepository{t: newTable(store, kvstore.KeyUsers,
		func(u model.User) string { return u.ID },
		func(u model.User) model.User { return u.Clone() },
	)}
}

func (r *UserRepository) List() []model.User {
	return r.t.all()
}

func (r *UserRepository) FindByID(id string) (model.User, bool) {
	return r.t.get(id)
}

// FindByEmail matches the address exactly.
func (r *UserRepository) FindByEmail(email string) (model.User, bool) {
	return r.t.first(func(u model.User) bool { return u.Email == email })
}

// EmailExists ignores case so "Ada@x.io" and "ada@x.io" cannot both register.
func (r *UserRepository) EmailExists(email string) bool {
	_, ok := r.t.first(func(u model.User) bool { return strings.EqualFold(u.Email, email) })
	return ok
}

func (r *UserRepository) Count() int {
	return r.t.count()
}

func (r *UserRepository) Create(u model.User) {
	r.t.insert(u)
}

// Upsert stores u, keeping an existing password hash when u carries none.
func (r *UserRepository) Upsert(u model.User) model.User {
	if existing, ok := r.t.update(u.ID, func(cur *model.User) {
		hash := cur.PasswordHash
		*cur = u.Clone()
		if cur.PasswordHash == "" {
			cur.PasswordHash = hash
		}
	}); ok {
		return existing
	}
	r.t.insert(u)
	return u.Clone()
}

func (r *UserRepository) Update(id string, fn func(*model.User)) (model.User, bool) {
	return r.t.update(id, fn)
}

func (r *UserRepository) RemapCourse(oldID, newID string) int {
	return r.t.updateWhere(
		func(u model.User) bool { return u.IsEnrolled(oldID) },
		func(u *model.User) {
			for i, id := range u.EnrolledCourses {
				if id == oldID {
					u.EnrolledCourses[i] = newID
				}
			}
		},
	)
}
