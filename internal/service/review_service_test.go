package service

import (
	"testing"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReviewRecomputesRating(t *testing.T) {
	f := newFixture(t)
	f.addCourse("c1", 1)

	for i, rating := range []int{4, 5, 3} {
		f.loginAs(model.User{ID: string(rune('a' + i)), Name: "reviewer"})
		_, err := f.reviews.AddReview(model.ReviewInput{CourseID: "c1", Rating: rating, Comment: "ok"})
		require.NoError(t, err)
	}

	c, _ := f.repos.Courses.FindByID("c1")
	assert.Equal(t, 4.0, c.Rating)
	assert.Equal(t, 3, c.ReviewsCount)
	assert.Len(t, f.reviews.ListReviews("c1"), 3)
}

func TestAddReviewRoundsToOneDecimal(t *testing.T) {
	f := newFixture(t)
	f.addCourse("c1", 1)

	for i, rating := range []int{5, 4, 4} {
		f.loginAs(model.User{ID: string(rune('a' + i))})
		_, err := f.reviews.AddReview(model.ReviewInput{CourseID: "c1", Rating: rating})
		require.NoError(t, err)
	}

	c, _ := f.repos.Courses.FindByID("c1")
	assert.Equal(t, 4.3, c.Rating)
}

func TestAddReviewRejectsSecondReview(t *testing.T) {
	f := newFixture(t)
	f.addCourse("c1", 1)
	f.loginAs(model.User{ID: "u1"})

	_, err := f.reviews.AddReview(model.ReviewInput{CourseID: "c1", Rating: 5})
	require.NoError(t, err)

	_, err = f.reviews.AddReview(model.ReviewInput{CourseID: "c1", Rating: 1})
	assert.ErrorIs(t, err, util.ErrSubmissionConflict)

	c, _ := f.repos.Courses.FindByID("c1")
	assert.Equal(t, 5.0, c.Rating)
	assert.Equal(t, 1, c.ReviewsCount)
	assert.Len(t, f.reviews.ListReviews("c1"), 1)
}

func TestAddReviewValidation(t *testing.T) {
	f := newFixture(t)
	f.addCourse("c1", 1)

	_, err := f.reviews.AddReview(model.ReviewInput{CourseID: "c1", Rating: 5})
	assert.ErrorIs(t, err, util.ErrNotAuthenticated)

	f.loginAs(model.User{ID: "u1"})
	_, err = f.reviews.AddReview(model.ReviewInput{CourseID: "c1", Rating: 6})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = f.reviews.AddReview(model.ReviewInput{CourseID: "missing", Rating: 3})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
