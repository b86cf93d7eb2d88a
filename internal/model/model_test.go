package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestQuestionLegacySingleAnswerIsNormalized(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id":"q1","options":["a","b","c"],"correctAnswer":1,"points":2}`), &q))

	assert.Equal(t, []int{1}, q.AcceptedAnswers())
	assert.True(t, q.IsCorrect([]int{1}))
	assert.False(t, q.IsCorrect([]int{0, 1}))

	q.Normalize()
	assert.Nil(t, q.CorrectAnswer)
	assert.Equal(t, []int{1}, q.CorrectAnswers)
}

func TestQuestionMultiSelectNeedsExactSet(t *testing.T) {
	q := Question{CorrectAnswers: []int{2, 0}, Points: 3}

	assert.True(t, q.IsCorrect([]int{0, 2}))
	assert.True(t, q.IsCorrect([]int{2, 0, 2}), "duplicates in the selection are ignored")
	assert.False(t, q.IsCorrect([]int{0}))
	assert.False(t, q.IsCorrect(nil))
}

func TestQuestionWithoutAnswersNeverScores(t *testing.T) {
	assert.False(t, Question{}.IsCorrect([]int{0}))
}

func TestCorrectAnswersWinsOverLegacyField(t *testing.T) {
	q := Question{CorrectAnswer: intPtr(0), CorrectAnswers: []int{3}}
	assert.Equal(t, []int{3}, q.AcceptedAnswers())
}

func TestRewardScheduleForAttempt(t *testing.T) {
	r := RewardSchedule{First: 50, Second: 30, Third: 20, FourthPlus: 10}
	assert.Equal(t, 50, r.ForAttempt(1))
	assert.Equal(t, 30, r.ForAttempt(2))
	assert.Equal(t, 20, r.ForAttempt(3))
	assert.Equal(t, 10, r.ForAttempt(7))
}

func TestUserAcceptsLegacyID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"abc","name":"Ada","role":"instructor"}`), &u))
	assert.Equal(t, "abc", u.ID)
	assert.Equal(t, Instructor, u.Role)
}

func TestCourseUpdateApply(t *testing.T) {
	c := Course{Title: "old", Published: true}
	title := "new"
	published := false
	CourseUpdate{Title: &title, Published: &published}.Apply(&c)

	assert.Equal(t, "new", c.Title)
	assert.False(t, c.Published)
}

func TestOrderedLessonsAndNextOrder(t *testing.T) {
	c := Course{Lessons: []Lesson{{ID: "b", Order: 2}, {ID: "a", Order: 1}, {ID: "c", Order: 5}}}
	ls := c.OrderedLessons()
	assert.Equal(t, "a", ls[0].ID)
	assert.Equal(t, "c", ls[2].ID)
	assert.Equal(t, 6, c.NextLessonOrder())
}

func TestTempIDs(t *testing.T) {
	id := NewTempID()
	assert.True(t, IsTempID(id))
	assert.False(t, IsTempID(GenerateUUID()))
}
