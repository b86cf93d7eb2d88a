package service

import (
	"learnhub_client/internal/model"
)

// 积分规则
const (
	LessonPoints           = 10
	CourseCompletionPoints = 100
	QuizPassPoints         = 50
)

// BadgeCatalog is ordered by ascending threshold.
var BadgeCatalog = []model.Badge{
	{ID: "first-steps", Name: "First Steps", Description: "Earned your first 50 points", Icon: "footprints", Threshold: 50},
	{ID: "rising-star", Name: "Rising Star", Description: "Reached 150 points", Icon: "star", Threshold: 150},
	{ID: "dedicated-learner", Name: "Dedicated Learner", Description: "Reached 300 points", Icon: "book-open", Threshold: 300},
	{ID: "knowledge-seeker", Name: "Knowledge Seeker", Description: "Reached 500 points", Icon: "compass", Threshold: 500},
	{ID: "master-scholar", Name: "Master Scholar", Description: "Reached 1000 points", Icon: "graduation-cap", Threshold: 1000},
}

// EvaluateBadge returns the lowest catalog badge whose threshold is within totalPoints and which
// user does not hold yet. At most one badge is returned per call, even when a single jump crosses
// several thresholds.
func EvaluateBadge(user model.User, totalPoints int) *model.Badge {
	for _, b := range BadgeCatalog {
		if b.Threshold > totalPoints {
			return nil
		}
		if !user.HasBadge(b.ID) {
			badge := b
			return &badge
		}
	}
	return nil
}

// NextBadge returns the lowest badge the user does not hold and has not reached yet.
func NextBadge(user model.User, totalPoints int) *model.Badge {
	for _, b := range BadgeCatalog {
		if b.Threshold > totalPoints && !user.HasBadge(b.ID) {
			badge := b
			return &badge
		}
	}
	return nil
}
