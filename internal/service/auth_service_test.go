package service

import (
	"context"
	"testing"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/kvstore"
	"learnhub_client/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLocalUser(t *testing.T, f *fixture, email, password string) model.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	u := model.User{ID: "local-1", Name: "Grace", Email: email, Role: model.Instructor, PasswordHash: hash}
	f.repos.Users.Create(u)
	return u
}

func TestLoginRemoteSuccessAdoptsUser(t *testing.T) {
	f := newFixture(t)
	f.authRemote.err = nil
	f.authRemote.resp = &model.AuthResponse{
		Message: "ok",
		Token:   "jwt-token",
		User:    &model.User{ID: "srv-u1", Name: "Ada", Email: "ada@example.com"},
	}

	u, err := f.auth.Login(context.Background(), model.LoginInput{Email: "ada@example.com", Password: "whatever"})
	require.NoError(t, err)

	assert.Equal(t, "srv-u1", u.ID)
	assert.Equal(t, model.Learner, u.Role, "role defaults to learner")
	assert.Equal(t, "jwt-token", f.authRemote.token)

	cur, ok := f.session.Current()
	require.True(t, ok)
	assert.Equal(t, "srv-u1", cur.ID)

	_, registered := f.repos.Users.FindByID("srv-u1")
	assert.True(t, registered)
}

func TestLoginFallsBackToLocalRegistry(t *testing.T) {
	f := newFixture(t)
	seedLocalUser(t, f, "grace@example.com", "secret1")

	u, err := f.auth.Login(context.Background(), model.LoginInput{Email: "grace@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "local-1", u.ID)
	assert.Empty(t, u.PasswordHash)
	assert.True(t, f.session.IsAuthenticated())
}

func TestLoginFallbackErrors(t *testing.T) {
	f := newFixture(t)
	seedLocalUser(t, f, "grace@example.com", "secret1")

	_, err := f.auth.Login(context.Background(), model.LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.EqualError(t, err, "No account found with this email")

	_, err = f.auth.Login(context.Background(), model.LoginInput{Email: "grace@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrAuth)

	_, err = f.auth.Login(context.Background(), model.LoginInput{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, util.ErrValidation)

	assert.False(t, f.session.IsAuthenticated())
}

func TestLoginRemoteWithoutUserIsUnavailable(t *testing.T) {
	f := newFixture(t)
	seedLocalUser(t, f, "grace@example.com", "secret1")
	f.authRemote.err = nil
	f.authRemote.resp = &model.AuthResponse{Message: "Invalid email or password"}

	u, err := f.auth.Login(context.Background(), model.LoginInput{Email: "grace@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "local-1", u.ID)
}

func TestRegisterConflictIsCheckedBeforePasswordLength(t *testing.T) {
	f := newFixture(t)
	seedLocalUser(t, f, "grace@example.com", "secret1")

	_, err := f.auth.Register(context.Background(), model.RegisterInput{Name: "G", Email: "Grace@example.com", Password: "123"})
	assert.ErrorIs(t, err, util.ErrConflict)
	assert.EqualError(t, err, "An account with this email already exists")

	_, err = f.auth.Register(context.Background(), model.RegisterInput{Name: "New", Email: "new@example.com", Password: "123"})
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.Contains(t, err.Error(), "at least 6")
}

func TestRegisterOfflineCreatesLocalLearner(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.Register(context.Background(), model.RegisterInput{Name: "Linus", Email: "linus@example.com", Password: "penguin"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, model.Learner, u.Role)
	assert.Zero(t, u.Points)
	assert.Empty(t, u.Badges)

	stored, ok := f.repos.Users.FindByEmail("linus@example.com")
	require.True(t, ok)
	assert.True(t, security.CheckPassword(stored.PasswordHash, "penguin"))

	// 能用刚注册的账号离线登录
	f.auth.Logout()
	_, err = f.auth.Login(context.Background(), model.LoginInput{Email: "linus@example.com", Password: "penguin"})
	assert.NoError(t, err)
}

func TestLogoutClearsSessionTokenAndPersistedUser(t *testing.T) {
	f := newFixture(t)
	f.authRemote.err = nil
	f.authRemote.resp = &model.AuthResponse{Token: "t", User: &model.User{ID: "srv-u1", Email: "ada@example.com", Role: model.Admin}}
	_, err := f.auth.Login(context.Background(), model.LoginInput{Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)

	restored := NewSessionService(f.store)
	assert.True(t, restored.IsAuthenticated(), "session survives a restart")

	f.auth.Logout()
	assert.False(t, f.session.IsAuthenticated())
	assert.True(t, f.authRemote.loggedOut)
	assert.Empty(t, f.authRemote.token)

	var snapshot model.User
	assert.False(t, f.store.Load(kvstore.KeyCurrentUser, &snapshot))
	assert.False(t, NewSessionService(f.store).IsAuthenticated())
}

func TestSeedDemoUsersOnlyFillsEmptyRegistry(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, SeedDemoUsers(f.repos.Users))
	assert.Equal(t, 3, f.repos.Users.Count())

	require.NoError(t, SeedDemoUsers(f.repos.Users))
	assert.Equal(t, 3, f.repos.Users.Count())

	u, err := f.auth.Login(context.Background(), model.LoginInput{Email: "admin@learnhub.dev", Password: DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, model.Admin, u.Role)
}
