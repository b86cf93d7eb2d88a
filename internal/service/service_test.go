package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"learnhub_client/internal/config"
	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/syncqueue"
	"learnhub_client/pkg/kvstore"
	"learnhub_client/pkg/security"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errOffline = errors.New("dial tcp: connection refused")

type fakeCourseRemote struct {
	mu        sync.Mutex
	gate      chan struct{}
	createErr error
	list      []model.Course
	listErr   error
	created   []model.Course
	updated   []string
	deleted   []string
	seq       int
}

func (f *fakeCourseRemote) ListCourses(_ context.Context, _ model.CourseFilter) ([]model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list, f.listErr
}

func (f *fakeCourseRemote) GetCourse(_ context.Context, id string) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.list {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, errors.New("api: status 404")
}

func (f *fakeCourseRemote) CreateCourse(ctx context.Context, course model.Course) (*model.Course, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	server := course.Clone()
	server.ID = fmt.Sprintf("srv-%d", f.seq)
	f.created = append(f.created, server)
	return &server, nil
}

func (f *fakeCourseRemote) UpdateCourse(_ context.Context, id string, _ model.CourseUpdate) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	return &model.Course{ID: id}, nil
}

func (f *fakeCourseRemote) DeleteCourse(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCourseRemote) updatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.updated...)
}

func (f *fakeCourseRemote) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type fakeAuthRemote struct {
	resp      *model.AuthResponse
	err       error
	token     string
	loggedOut bool
}

func (f *fakeAuthRemote) Login(context.Context, string, string) (*model.AuthResponse, error) {
	return f.resp, f.err
}

func (f *fakeAuthRemote) Signup(context.Context, string, string, string) (*model.AuthResponse, error) {
	return f.resp, f.err
}

func (f *fakeAuthRemote) Logout() {
	f.loggedOut = true
	f.token = ""
}

func (f *fakeAuthRemote) SetToken(token string) {
	f.token = token
}

type fixture struct {
	store       *kvstore.Store
	repos       *repository.Repositories
	session     *SessionService
	policy      *AccessPolicy
	users       *UserService
	courses     *CourseService
	enrollments *EnrollmentService
	reviews     *ReviewService
	certs       *CertificateService
	dashboards  *DashboardService
	auth        *AuthService
	queue       *syncqueue.Queue
	aliases     *syncqueue.Aliases
	remote      *fakeCourseRemote
	authRemote  *fakeAuthRemote
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	security.HashCost = bcrypt.MinCost

	f := &fixture{
		store:      kvstore.New(kvstore.NewMemoryBackend()),
		remote:     &fakeCourseRemote{},
		authRemote: &fakeAuthRemote{err: errOffline},
		queue:      syncqueue.New(config.SyncConfig{JobTimeout: 2 * time.Second}),
	}
	t.Cleanup(func() { f.queue.Close(context.Background()) })

	f.repos = repository.NewRepositories(f.store)
	f.session = NewSessionService(f.store)
	f.aliases = syncqueue.NewAliases()
	f.policy = NewAccessPolicy(f.session, f.repos.Courses, f.aliases)
	f.users = NewUserService(f.repos.Users, f.session, f.policy)
	f.courses = NewCourseService(f.repos, f.session, f.policy, f.remote, f.queue, f.aliases)
	f.enrollments = NewEnrollmentService(f.repos, f.session, f.users)
	f.reviews = NewReviewService(f.repos, f.session, f.courses)
	f.certs = NewCertificateService(f.repos, f.session)
	f.dashboards = NewDashboardService(f.repos, f.session, f.policy)
	f.auth = NewAuthService(f.session, f.repos.Users,
		NewRemoteAuthProvider(f.authRemote, f.repos.Users),
		NewLocalAuthProvider(f.repos.Users),
	)
	return f
}

// loginAs registers u locally and makes it the session user.
func (f *fixture) loginAs(u model.User) model.User {
	if u.Role == "" {
		u.Role = model.Learner
	}
	if _, ok := f.repos.Users.FindByID(u.ID); !ok {
		f.repos.Users.Create(u)
	}
	f.session.Set(u)
	return u
}

func (f *fixture) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.queue.Flush(ctx))
}

// addCourse stores a published course with n lessons ordered l1..ln.
func (f *fixture) addCourse(id string, n int) model.Course {
	c := model.Course{ID: id, Title: "Course " + id, InstructorID: "instr", Published: true}
	for i := 1; i <= n; i++ {
		c.Lessons = append(c.Lessons, model.Lesson{ID: fmt.Sprintf("l%d", i), CourseID: id, Title: fmt.Sprintf("Lesson %d", i), Order: i})
	}
	f.repos.Courses.Create(c)
	return c
}
