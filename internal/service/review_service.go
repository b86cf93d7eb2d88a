package service

import (
	"math"
	"strings"
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/logger"

	"go.uber.org/zap"
)

type ReviewService struct {
	repos   *repository.Repositories
	session *SessionService
	courses *CourseService
}

func NewReviewService(repos *repository.Repositories, session *SessionService, courses *CourseService) *ReviewService {
	return &ReviewService{repos: repos, session: session, courses: courses}
}

// AddReview stores one review per user and course, then recomputes the course rating through UpdateCourse.
func (s *ReviewService) AddReview(input model.ReviewInput) (model.Review, error) {
	user, ok := s.session.Current()
	if !ok {
		return model.Review{}, util.ErrNotAuthenticated
	}
	input.Comment = strings.TrimSpace(input.Comment)
	if err := util.ValidateStruct(input); err != nil {
		return model.Review{}, err
	}
	if _, ok := s.repos.Courses.FindByID(input.CourseID); !ok {
		return model.Review{}, util.ErrCourseNotFound
	}
	if _, exists := s.repos.Reviews.FindByUserAndCourse(user.ID, input.CourseID); exists {
		return model.Review{}, util.ErrSubmissionConflict
	}

	review := model.Review{
		ID:        model.GenerateUUID(),
		UserID:    user.ID,
		UserName:  user.Name,
		CourseID:  input.CourseID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	s.repos.Reviews.Create(review)

	rating, count := averageRating(s.repos.Reviews.FindByCourse(input.CourseID))
	if _, err := s.courses.UpdateCourse(input.CourseID, model.CourseUpdate{Rating: &rating, ReviewsCount: &count}); err != nil {
		logger.Log.Warn("course rating not updated", zap.String("course", input.CourseID), zap.Error(err))
	}
	return review, nil
}

func (s *ReviewService) ListReviews(courseID string) []model.Review {
	return s.repos.Reviews.FindByCourse(courseID)
}

// averageRating returns the mean rounded to one decimal.
func averageRating(reviews []model.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10, len(reviews)
}
