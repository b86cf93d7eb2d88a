package service

import (
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/logger"

	"go.uber.org/zap"
)

// LessonCompletion drives the points popup and the certificate prompt.
type LessonCompletion struct {
	PointsEarned      int          `json:"pointsEarned"`
	TotalPoints       int          `json:"totalPoints"`
	NewBadge          *model.Badge `json:"newBadge,omitempty"`
	IsCourseCompleted bool         `json:"isCourseCompleted"`
}

type QuizResult struct {
	Attempt     model.QuizAttempt `json:"attempt"`
	TotalPoints int               `json:"totalPoints"`
	NewBadge    *model.Badge      `json:"newBadge,omitempty"`
}

type EnrollmentService struct {
	repos   *repository.Repositories
	session *SessionService
	users   *UserService
}

func NewEnrollmentService(repos *repository.Repositories, session *SessionService, users *UserService) *EnrollmentService {
	return &EnrollmentService{repos: repos, session: session, users: users}
}

// EnrollInCourse always creates a new enrollment; calling it twice yields two records.
func (s *EnrollmentService) EnrollInCourse(userID, courseID string) (model.Enrollment, error) {
	if _, ok := s.repos.Courses.FindByID(courseID); !ok {
		return model.Enrollment{}, util.ErrCourseNotFound
	}
	e := model.Enrollment{
		ID:               model.GenerateUUID(),
		UserID:           userID,
		CourseID:         courseID,
		EnrolledAt:       time.Now(),
		CompletedLessons: []string{},
		QuizAttempts:     []model.QuizAttempt{},
		Status:           model.InProgress,
	}
	s.repos.Enrollments.Create(e)

	if u, ok := s.users.update(userID, func(u *model.User) {
		if !u.IsEnrolled(courseID) {
			u.EnrolledCourses = append(u.EnrolledCourses, courseID)
		}
	}); ok {
		s.session.Refresh(u)
	}
	logger.Log.Info("enrolled", zap.String("user", userID), zap.String("course", courseID), zap.String("enrollment", e.ID))
	return e, nil
}

func (s *EnrollmentService) FindEnrollment(userID, courseID string) (model.Enrollment, bool) {
	return s.repos.Enrollments.FindByUserAndCourse(userID, courseID)
}

func (s *EnrollmentService) ListEnrollments(userID string) []model.Enrollment {
	return s.repos.Enrollments.FindByUser(userID)
}

// UpdateProgress records lessonID as completed and awards the current user LessonPoints.
// It reports false and changes nothing when the lesson was already completed.
func (s *EnrollmentService) UpdateProgress(enrollmentID, lessonID string) (model.Enrollment, bool, error) {
	e, ok := s.repos.Enrollments.FindByID(enrollmentID)
	if !ok {
		return model.Enrollment{}, false, util.ErrEnrollmentNotFound
	}
	if e.HasCompleted(lessonID) {
		return e, false, nil
	}
	course, ok := s.repos.Courses.FindByID(e.CourseID)
	if !ok {
		return model.Enrollment{}, false, util.ErrCourseNotFound
	}

	now := time.Now()
	e, _ = s.repos.Enrollments.Update(enrollmentID, func(e *model.Enrollment) {
		e.CompletedLessons = append(e.CompletedLessons, lessonID)
		e.Progress = progress(len(e.CompletedLessons), len(course.Lessons))
		e.LastAccessedAt = &now
		if e.Progress == 100 && e.Status != model.Completed {
			e.Status = model.Completed
			e.CompletedAt = &now
		}
	})

	if u, ok := s.session.Current(); ok {
		if _, err := s.users.AwardPoints(u.ID, LessonPoints); err != nil {
			logger.Log.Warn("lesson points not awarded", zap.String("user", u.ID), zap.Error(err))
		}
	}
	return e, true, nil
}

// progress is capped at 100; a course without lessons counts as done.
func progress(completed, total int) float64 {
	if total == 0 {
		return 100
	}
	p := float64(completed) / float64(total) * 100
	if p > 100 {
		return 100
	}
	return p
}

// CompleteLesson is the lesson player's completion call. It enrolls the current user on first use,
// awards lesson points once per lesson, adds the course completion bonus once, and evaluates badges.
func (s *EnrollmentService) CompleteLesson(courseID, lessonID string) (*LessonCompletion, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, util.ErrNotAuthenticated
	}
	course, ok := s.repos.Courses.FindByID(courseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}

	e, ok := s.repos.Enrollments.FindByUserAndCourse(user.ID, course.ID)
	if !ok {
		var err error
		if e, err = s.EnrollInCourse(user.ID, course.ID); err != nil {
			return nil, err
		}
	}

	if e.HasCompleted(lessonID) {
		return &LessonCompletion{
			TotalPoints:       s.totalPoints(user),
			IsCourseCompleted: e.IsCompleted(),
		}, nil
	}

	wasCompleted := e.IsCompleted()
	completedBefore := len(e.CompletedLessons)
	if _, _, err := s.UpdateProgress(e.ID, lessonID); err != nil {
		return nil, err
	}

	earned := LessonPoints
	courseDone := completedBefore+1 >= len(course.Lessons)
	if courseDone && !wasCompleted {
		if _, err := s.users.AwardPoints(user.ID, CourseCompletionPoints); err != nil {
			logger.Log.Warn("completion bonus not awarded", zap.String("user", user.ID), zap.Error(err))
		} else {
			earned += CourseCompletionPoints
		}
		logger.Log.Info("course completed", zap.String("user", user.ID), zap.String("course", course.ID))
	}

	total, badge := s.settle(user.ID)
	return &LessonCompletion{
		PointsEarned:      earned,
		TotalPoints:       total,
		NewBadge:          badge,
		IsCourseCompleted: courseDone || wasCompleted,
	}, nil
}

// SubmitQuizAttempt scores answers (question id -> selected option indexes) against the accepted sets.
func (s *EnrollmentService) SubmitQuizAttempt(courseID, quizID string, answers map[string][]int) (*QuizResult, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, util.ErrNotAuthenticated
	}
	course, ok := s.repos.Courses.FindByID(courseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	quiz, ok := course.Quiz(quizID)
	if !ok {
		return nil, util.ErrQuizNotFound
	}

	e, ok := s.repos.Enrollments.FindByUserAndCourse(user.ID, course.ID)
	if !ok {
		var err error
		if e, err = s.EnrollInCourse(user.ID, course.ID); err != nil {
			return nil, err
		}
	}

	attempt := gradeQuiz(quiz, answers)
	attempt.ID = model.GenerateUUID()
	attempt.AttemptNumber = e.AttemptsFor(quiz.ID) + 1
	attempt.SubmittedAt = time.Now()
	if attempt.Passed {
		attempt.PointsAwarded = QuizPassPoints
		if quiz.RewardPoints != nil {
			attempt.PointsAwarded = quiz.RewardPoints.ForAttempt(attempt.AttemptNumber)
		}
	}

	now := attempt.SubmittedAt
	s.repos.Enrollments.Update(e.ID, func(e *model.Enrollment) {
		e.QuizAttempts = append(e.QuizAttempts, attempt)
		e.LastAccessedAt = &now
	})
	logger.Log.Info("quiz attempt recorded",
		zap.String("user", user.ID),
		zap.String("quiz", quiz.ID),
		zap.Int("attempt", attempt.AttemptNumber),
		zap.Bool("passed", attempt.Passed),
	)

	if attempt.PointsAwarded > 0 {
		if _, err := s.users.AwardPoints(user.ID, attempt.PointsAwarded); err != nil {
			logger.Log.Warn("quiz points not awarded", zap.String("user", user.ID), zap.Error(err))
		}
	}
	total, badge := s.settle(user.ID)
	return &QuizResult{Attempt: attempt, TotalPoints: total, NewBadge: badge}, nil
}

// gradeQuiz fills the score fields; a question counts only when the selection equals its accepted set.
func gradeQuiz(quiz model.Quiz, answers map[string][]int) model.QuizAttempt {
	a := model.QuizAttempt{
		QuizID:      quiz.ID,
		Answers:     make(map[string][]int, len(answers)),
		TotalPoints: quiz.TotalPoints(),
	}
	for k, v := range answers {
		a.Answers[k] = append([]int(nil), v...)
	}
	for _, q := range quiz.Questions {
		if q.IsCorrect(answers[q.ID]) {
			a.Score += q.Points
		}
	}
	if a.TotalPoints > 0 {
		a.Percentage = float64(a.Score) / float64(a.TotalPoints) * 100
	}
	a.Passed = a.Percentage >= float64(quiz.PassingScore)
	return a
}

// settle evaluates the badge catalog once against the user's current total.
func (s *EnrollmentService) settle(userID string) (int, *model.Badge) {
	u, err := s.users.Get(userID)
	if err != nil {
		return 0, nil
	}
	badge := EvaluateBadge(u, u.Points)
	if badge == nil {
		return u.Points, nil
	}
	if _, awarded := s.users.AwardBadge(userID, *badge); !awarded {
		return u.Points, nil
	}
	return u.Points, badge
}

func (s *EnrollmentService) totalPoints(user model.User) int {
	if u, err := s.users.Get(user.ID); err == nil {
		return u.Points
	}
	return user.Points
}
