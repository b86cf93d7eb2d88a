package service

import (
	"testing"

	"learnhub_client/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGuestVisibility(t *testing.T) {
	cases := []struct {
		published, allowGuests, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, tc := range cases {
		course := model.Course{Published: tc.published, AllowGuests: tc.allowGuests}
		assert.Equal(t, tc.want, canView(nil, course), "published=%v allowGuests=%v", tc.published, tc.allowGuests)
	}
}

func TestCanViewCourseByRole(t *testing.T) {
	f := newFixture(t)
	f.repos.Courses.Create(model.Course{ID: "draft", InstructorID: "owner"})
	f.repos.Courses.Create(model.Course{ID: "live", InstructorID: "owner", Published: true})

	assert.False(t, f.policy.CanViewCourse("live"), "guests need allowGuests")

	f.loginAs(model.User{ID: "learner"})
	assert.True(t, f.policy.CanViewCourse("live"))
	assert.False(t, f.policy.CanViewCourse("draft"))

	f.loginAs(model.User{ID: "other", Role: model.Instructor})
	assert.False(t, f.policy.CanViewCourse("draft"))

	f.loginAs(model.User{ID: "owner", Role: model.Instructor})
	assert.True(t, f.policy.CanViewCourse("draft"))

	f.loginAs(model.User{ID: "root", Role: model.Admin})
	assert.True(t, f.policy.CanViewCourse("draft"))
	assert.False(t, f.policy.CanViewCourse("missing"))
}

func TestCanEditCourse(t *testing.T) {
	f := newFixture(t)
	f.repos.Courses.Create(model.Course{ID: "c1", InstructorID: "owner"})

	assert.False(t, f.policy.CanEditCourse("c1"))

	f.loginAs(model.User{ID: "owner", Role: model.Learner})
	assert.False(t, f.policy.CanEditCourse("c1"), "ownership alone is not enough")

	f.loginAs(model.User{ID: "owner2", Role: model.Instructor})
	assert.False(t, f.policy.CanEditCourse("c1"))

	f.session.Set(model.User{ID: "owner", Role: model.Instructor})
	assert.True(t, f.policy.CanEditCourse("c1"))
	assert.False(t, f.policy.CanManageUsers())

	f.loginAs(model.User{ID: "root", Role: model.Admin})
	assert.True(t, f.policy.CanEditCourse("c1"))
	assert.True(t, f.policy.CanManageUsers())
}
