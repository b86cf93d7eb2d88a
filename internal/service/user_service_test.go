package service

import (
	"testing"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBadge(t *testing.T) {
	user := model.User{}

	assert.Nil(t, EvaluateBadge(user, 49))
	b := EvaluateBadge(user, 60)
	require.NotNil(t, b)
	assert.Equal(t, "first-steps", b.ID)

	b = EvaluateBadge(user, 600)
	require.NotNil(t, b)
	assert.Equal(t, "first-steps", b.ID, "one badge per evaluation")

	user.Badges = []model.Badge{{ID: "first-steps"}}
	assert.Nil(t, EvaluateBadge(user, 60))
	b = EvaluateBadge(user, 600)
	require.NotNil(t, b)
	assert.Equal(t, "rising-star", b.ID)

	next := NextBadge(user, 60)
	require.NotNil(t, next)
	assert.Equal(t, "rising-star", next.ID)
}

func TestAwardBadgeIsAppendOnlyAndUnique(t *testing.T) {
	f := newFixture(t)
	f.loginAs(model.User{ID: "u1"})

	_, awarded := f.users.AwardBadge("u1", BadgeCatalog[0])
	assert.True(t, awarded)
	u, awarded := f.users.AwardBadge("u1", BadgeCatalog[0])
	assert.False(t, awarded)
	assert.Len(t, u.Badges, 1)

	u, err := f.users.AwardPoints("u1", -20)
	require.NoError(t, err)
	assert.Zero(t, u.Points, "awards never subtract")
}

func TestAwardPointsAdoptsRemoteSessionUser(t *testing.T) {
	f := newFixture(t)
	f.session.Set(model.User{ID: "remote-only", Name: "Ada", Points: 5})

	u, err := f.users.AwardPoints("remote-only", 10)
	require.NoError(t, err)
	assert.Equal(t, 15, u.Points)

	_, err = f.users.AwardPoints("stranger", 10)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestAdminOperationsRequireAdmin(t *testing.T) {
	f := newFixture(t)
	f.repos.Users.Create(model.User{ID: "u2", Role: model.Learner, Points: 30, PasswordHash: "h"})
	f.loginAs(model.User{ID: "u1", Role: model.Instructor})

	_, err := f.users.ListUsers()
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = f.users.ChangeRole("u2", model.Instructor)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	f.loginAs(model.User{ID: "root", Role: model.Admin})
	users, err := f.users.ListUsers()
	require.NoError(t, err)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	u, err := f.users.ChangeRole("u2", model.Instructor)
	require.NoError(t, err)
	assert.Equal(t, model.Instructor, u.Role)

	_, err = f.users.ChangeRole("u2", "superuser")
	assert.ErrorIs(t, err, util.ErrValidation)

	u, err = f.users.AdjustPoints("u2", -100)
	require.NoError(t, err)
	assert.Zero(t, u.Points)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.UpdateProfile(model.ProfileUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, util.ErrNotAuthenticated)

	f.loginAs(model.User{ID: "u1", Name: "Ada"})
	u, err := f.users.UpdateProfile(model.ProfileUpdate{Bio: ptr("Go developer")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "Go developer", u.Bio)

	cur, _ := f.session.Current()
	assert.Equal(t, "Go developer", cur.Bio)
}

func TestDashboards(t *testing.T) {
	f := newFixture(t)
	f.addCourse("c1", 1)
	f.addCourse("c2", 2)
	f.loginAs(model.User{ID: "u1"})
	_, err := f.enrollments.CompleteLesson("c1", "l1")
	require.NoError(t, err)
	_, err = f.enrollments.CompleteLesson("c2", "l1")
	require.NoError(t, err)

	d, err := f.dashboards.Learner()
	require.NoError(t, err)
	assert.Equal(t, 1, d.CompletedCourses)
	assert.Equal(t, 1, d.InProgress)
	require.NotNil(t, d.NextBadge)
	assert.Equal(t, "rising-star", d.NextBadge.ID)

	_, err = f.dashboards.Instructor()
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = f.dashboards.Admin()
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	f.loginAs(model.User{ID: "instr", Role: model.Instructor})
	inst, err := f.dashboards.Instructor()
	require.NoError(t, err)
	require.Len(t, inst.Courses, 2)
	assert.Equal(t, 2, inst.TotalStudents)
	assert.Equal(t, 1, inst.Courses[0].Completions)

	f.loginAs(model.User{ID: "root", Role: model.Admin})
	adm, err := f.dashboards.Admin()
	require.NoError(t, err)
	assert.Equal(t, 3, adm.TotalUsers)
	assert.Equal(t, 2, adm.TotalEnrollments)
	assert.Equal(t, 1, adm.CompletedEnrollments)
}
