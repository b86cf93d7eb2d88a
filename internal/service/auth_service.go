package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/security"

	"go.uber.org/zap"
)

type AuthOutcome int

const (
	AuthSuccess AuthOutcome = iota
	// AuthFailure is a definitive answer; the chain stops.
	AuthFailure
	// AuthUnavailable hands the request to the next provider.
	AuthUnavailable
)

func (o AuthOutcome) String() string {
	switch o {
	case AuthSuccess:
		return "success"
	case AuthFailure:
		return "failure"
	}
	return "unavailable"
}

type AuthResult struct {
	Outcome AuthOutcome
	User    model.User
	Err     error
}

func authOK(u model.User) AuthResult { return AuthResult{Outcome: AuthSuccess, User: u} }

func authFailed(err error) AuthResult { return AuthResult{Outcome: AuthFailure, Err: err} }

func authUnavailable(err error) AuthResult { return AuthResult{Outcome: AuthUnavailable, Err: err} }

type AuthProvider interface {
	Name() string
	Login(ctx context.Context, email, password string) AuthResult
	Register(ctx context.Context, input model.RegisterInput) AuthResult
}

// AuthRemote is the part of the API client the remote provider needs.
type AuthRemote interface {
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Signup(ctx context.Context, name, email, password string) (*model.AuthResponse, error)
	Logout()
	SetToken(token string)
}

// RemoteAuthProvider treats every backend error as "unavailable" so the local registry can answer.
type RemoteAuthProvider struct {
	remote AuthRemote
	users  *repository.UserRepository
}

func NewRemoteAuthProvider(remote AuthRemote, users *repository.UserRepository) *RemoteAuthProvider {
	return &RemoteAuthProvider{remote: remote, users: users}
}

func (p *RemoteAuthProvider) Name() string { return "remote" }

func (p *RemoteAuthProvider) Login(ctx context.Context, email, password string) AuthResult {
	resp, err := p.remote.Login(ctx, email, password)
	return p.adopt(resp, err)
}

func (p *RemoteAuthProvider) Register(ctx context.Context, input model.RegisterInput) AuthResult {
	resp, err := p.remote.Signup(ctx, input.Name, input.Email, input.Password)
	return p.adopt(resp, err)
}

func (p *RemoteAuthProvider) Logout() {
	p.remote.Logout()
}

func (p *RemoteAuthProvider) adopt(resp *model.AuthResponse, err error) AuthResult {
	if err != nil {
		return authUnavailable(err)
	}
	if resp == nil || resp.User == nil || resp.User.ID == "" {
		return authUnavailable(errors.New("backend returned no user"))
	}
	if resp.Token != "" {
		p.remote.SetToken(resp.Token)
	}
	u := resp.User.Clone()
	if !u.Role.Valid() {
		u.Role = model.Learner
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.PasswordHash = ""
	// 本地登记一份，断网时还能找到这个账号
	return authOK(p.users.Upsert(u))
}

// LocalAuthProvider answers from the local registry and never reports unavailable.
type LocalAuthProvider struct {
	users *repository.UserRepository
}

func NewLocalAuthProvider(users *repository.UserRepository) *LocalAuthProvider {
	return &LocalAuthProvider{users: users}
}

func (p *LocalAuthProvider) Name() string { return "local" }

func (p *LocalAuthProvider) Login(_ context.Context, email, password string) AuthResult {
	u, ok := p.users.FindByEmail(email)
	if !ok {
		return authFailed(util.ErrUserNotFound)
	}
	if !security.CheckPassword(u.PasswordHash, password) {
		return authFailed(util.ErrAuth)
	}
	return authOK(u)
}

func (p *LocalAuthProvider) Register(_ context.Context, input model.RegisterInput) AuthResult {
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return authFailed(err)
	}
	u := model.User{
		ID:              model.GenerateUUID(),
		Name:            input.Name,
		Email:           input.Email,
		Role:            model.Learner,
		Badges:          []model.Badge{},
		EnrolledCourses: []string{},
		PasswordHash:    hash,
		CreatedAt:       time.Now(),
	}
	p.users.Create(u)
	return authOK(u)
}

type AuthService struct {
	session   *SessionService
	users     *repository.UserRepository
	providers []AuthProvider
}

// NewAuthService tries providers in order; the usual chain is remote then local.
func NewAuthService(session *SessionService, users *repository.UserRepository, providers ...AuthProvider) *AuthService {
	return &AuthService{session: session, users: users, providers: providers}
}

func (s *AuthService) Login(ctx context.Context, input model.LoginInput) (model.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := util.ValidateStruct(input); err != nil {
		return model.User{}, err
	}
	return s.run(func(p AuthProvider) AuthResult {
		return p.Login(ctx, input.Email, input.Password)
	}, "login")
}

// Register reports a taken email before a short password.
func (s *AuthService) Register(ctx context.Context, input model.RegisterInput) (model.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if err := util.ValidateStruct(input); err != nil {
		return model.User{}, err
	}
	if s.users.EmailExists(input.Email) {
		return model.User{}, util.ErrEmailRegistered
	}
	if err := util.ValidateVar("password", input.Password, "min=6", "Password must be at least 6 characters"); err != nil {
		return model.User{}, err
	}
	return s.run(func(p AuthProvider) AuthResult {
		return p.Register(ctx, input)
	}, "register")
}

// Logout always succeeds.
func (s *AuthService) Logout() {
	for _, p := range s.providers {
		if lp, ok := p.(interface{ Logout() }); ok {
			lp.Logout()
		}
	}
	s.session.Clear()
}

func (s *AuthService) run(attempt func(AuthProvider) AuthResult, op string) (model.User, error) {
	for _, p := range s.providers {
		res := attempt(p)
		switch res.Outcome {
		case AuthSuccess:
			s.session.Set(res.User)
			logger.Log.Info("auth succeeded", zap.String("op", op), zap.String("provider", p.Name()), zap.String("user", res.User.ID))
			return res.User.Public(), nil
		case AuthFailure:
			return model.User{}, res.Err
		default:
			logger.Log.Debug("auth provider unavailable", zap.String("op", op), zap.String("provider", p.Name()), zap.Error(res.Err))
		}
	}
	return model.User{}, util.ErrBackendUnavailable
}

// DemoPassword is shared by the seeded demo accounts.
const DemoPassword = "learnhub123"

// SeedDemoUsers fills an empty registry with one account per role so the client is usable offline.
func SeedDemoUsers(users *repository.UserRepository) error {
	if users.Count() > 0 {
		return nil
	}
	hash, err := security.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, u := range []model.User{
		{ID: "demo-admin", Name: "Ada Admin", Email: "admin@learnhub.dev", Role: model.Admin},
		{ID: "demo-instructor", Name: "Ivan Instructor", Email: "instructor@learnhub.dev", Role: model.Instructor},
		{ID: "demo-learner", Name: "Lena Learner", Email: "learner@learnhub.dev", Role: model.Learner},
	} {
		u.PasswordHash = hash
		u.Badges = []model.Badge{}
		u.EnrolledCourses = []string{}
		u.CreatedAt = now
		users.Create(u)
	}
	logger.Log.Info("seeded demo accounts", zap.Int("count", 3))
	return nil
}
