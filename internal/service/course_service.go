package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/syncqueue"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/logger"

	"go.uber.org/zap"
)

const courseEntity = "course"

// CourseRemote is the backend side of course CRUD.
type CourseRemote interface {
	ListCourses(ctx context.Context, filter model.CourseFilter) ([]model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	CreateCourse(ctx context.Context, course model.Course) (*model.Course, error)
	UpdateCourse(ctx context.Context, id string, update model.CourseUpdate) (*model.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CourseService applies course mutations locally before returning and pushes them to the backend
// through the sync queue. Remote failures never roll back local state.
type CourseService struct {
	repos   *repository.Repositories
	session *SessionService
	policy  *AccessPolicy
	remote  CourseRemote
	queue   *syncqueue.Queue
	aliases *syncqueue.Aliases
}

// NewCourseService accepts a nil remote or queue for offline use.
func NewCourseService(repos *repository.Repositories, session *SessionService, policy *AccessPolicy,
	remote CourseRemote, queue *syncqueue.Queue, aliases *syncqueue.Aliases) *CourseService {
	if aliases == nil {
		aliases = syncqueue.NewAliases()
	}
	return &CourseService{
		repos:   repos,
		session: session,
		policy:  policy,
		remote:  remote,
		queue:   queue,
		aliases: aliases,
	}
}

// Bootstrap replaces the local catalog with the backend's when the backend returns a non-empty list.
// An empty list is treated like a failed fetch and local state is kept.
func (s *CourseService) Bootstrap(ctx context.Context) bool {
	if s.remote == nil {
		return false
	}
	courses, err := s.remote.ListCourses(ctx, model.CourseFilter{})
	if err != nil {
		logger.Log.Warn("course bootstrap failed, keeping local catalog", zap.Error(err))
		return false
	}
	if len(courses) == 0 {
		logger.Log.Info("backend returned no courses, keeping local catalog")
		return false
	}
	s.repos.Courses.ReplaceAll(courses)
	logger.Log.Info("course catalog replaced from backend", zap.Int("count", len(courses)))
	return true
}

// CreateCourse stores the course under a temporary id and returns it immediately. Once the backend
// confirms, the temp entry is replaced by the server copy at the same position.
func (s *CourseService) CreateCourse(input model.CourseInput) (model.Course, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := util.ValidateStruct(input); err != nil {
		return model.Course{}, err
	}
	if u, ok := s.session.Current(); ok && input.InstructorID == "" {
		input.InstructorID = u.ID
		input.InstructorName = u.Name
	}

	now := time.Now()
	course := model.Course{
		ID:             model.NewTempID(),
		Title:          input.Title,
		Description:    input.Description,
		Thumbnail:      input.Thumbnail,
		InstructorID:   input.InstructorID,
		InstructorName: input.InstructorName,
		Category:       input.Category,
		Level:          input.Level,
		Price:          input.Price,
		Published:      input.Published,
		AllowGuests:    input.AllowGuests,
		Lessons:        make([]model.Lesson, 0, len(input.Lessons)),
		Quizzes:        make([]model.Quiz, 0, len(input.Quizzes)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if course.Level == "" {
		course.Level = model.Beginner
	}
	for i, l := range input.Lessons {
		if l.ID == "" {
			l.ID = model.GenerateUUID()
		}
		if l.Order == 0 {
			l.Order = i + 1
		}
		l.CourseID = course.ID
		course.Lessons = append(course.Lessons, l)
	}
	for i, q := range input.Quizzes {
		q = q.Clone()
		if q.ID == "" {
			q.ID = model.GenerateUUID()
		}
		if q.Order == 0 {
			q.Order = i + 1
		}
		q.CourseID = course.ID
		course.Quizzes = append(course.Quizzes, q)
	}

	s.repos.Courses.Create(course)
	logger.Log.Info("course created locally", zap.String("course", course.ID), zap.String("title", course.Title))

	created := course.Clone()
	s.enqueue("create", func(ctx context.Context) error {
		server, err := s.remote.CreateCourse(ctx, created)
		if err != nil {
			return err
		}
		return s.reconcileCreate(created.ID, *server)
	})
	return course, nil
}

// reconcileCreate swaps the temp entry for the server copy and remaps everything that referenced it.
func (s *CourseService) reconcileCreate(tempID string, server model.Course) error {
	if server.ID == "" {
		return errors.New("backend returned a course without id")
	}
	s.aliases.Set(tempID, server.ID)

	if !s.repos.Courses.ReplaceID(tempID, server) {
		logger.Log.Debug("temp course gone before reconciliation", zap.String("temp", tempID), zap.String("course", server.ID))
		return nil
	}
	n := s.repos.RemapCourse(tempID, server.ID)
	if u, ok := s.session.Current(); ok && u.IsEnrolled(tempID) {
		if fresh, found := s.repos.Users.FindByID(u.ID); found {
			s.session.Refresh(fresh)
		}
	}
	logger.Log.Info("course reconciled",
		zap.String("temp", tempID),
		zap.String("course", server.ID),
		zap.Int("remapped", n),
	)
	return nil
}

// UpdateCourse merges update into the local course. The server response is not merged back.
func (s *CourseService) UpdateCourse(id string, update model.CourseUpdate) (model.Course, error) {
	if err := util.ValidateStruct(update); err != nil {
		return model.Course{}, err
	}
	id = s.localID(id)
	course, ok := s.repos.Courses.Update(id, func(c *model.Course) {
		update.Apply(c)
		c.UpdatedAt = time.Now()
	})
	if !ok {
		return model.Course{}, util.ErrCourseNotFound
	}

	s.enqueue("update", func(ctx context.Context) error {
		target := s.aliases.Resolve(id)
		if model.IsTempID(target) {
			return fmt.Errorf("course %s was never created on the backend", id)
		}
		_, err := s.remote.UpdateCourse(ctx, target, update)
		return err
	})
	return course, nil
}

func (s *CourseService) DeleteCourse(id string) error {
	id = s.localID(id)
	if !s.repos.Courses.Delete(id) {
		return util.ErrCourseNotFound
	}
	logger.Log.Info("course deleted locally", zap.String("course", id))

	s.enqueue("delete", func(ctx context.Context) error {
		target := s.aliases.Resolve(id)
		if model.IsTempID(target) {
			// 创建没成功，服务端没有这门课
			return nil
		}
		return s.remote.DeleteCourse(ctx, target)
	})
	return nil
}

func (s *CourseService) PublishCourse(id string) (model.Course, error) {
	published := true
	return s.UpdateCourse(id, model.CourseUpdate{Published: &published})
}

func (s *CourseService) UnpublishCourse(id string) (model.Course, error) {
	published := false
	return s.UpdateCourse(id, model.CourseUpdate{Published: &published})
}

// GetCourse reads the local catalog first and falls back to the backend, caching what it finds.
// Temp ids that were already reconciled resolve to their server id.
func (s *CourseService) GetCourse(ctx context.Context, id string) (model.Course, error) {
	if c, ok := s.repos.Courses.FindByID(id); ok {
		return c, nil
	}
	if resolved := s.aliases.Resolve(id); resolved != id {
		if c, ok := s.repos.Courses.FindByID(resolved); ok {
			return c, nil
		}
	}
	if s.remote == nil || model.IsTempID(id) {
		return model.Course{}, util.ErrCourseNotFound
	}
	c, err := s.remote.GetCourse(ctx, id)
	if err != nil || c == nil || c.ID == "" {
		if err != nil {
			logger.Log.Debug("remote course lookup failed", zap.String("course", id), zap.Error(err))
		}
		return model.Course{}, util.ErrCourseNotFound
	}
	s.repos.Courses.Create(*c)
	got, _ := s.repos.Courses.FindByID(c.ID)
	return got, nil
}

// ListCourses returns the courses the current viewer may see that match filter, in catalog order.
func (s *CourseService) ListCourses(filter model.CourseFilter) []model.Course {
	var viewer *model.User
	if u, ok := s.session.Current(); ok {
		viewer = &u
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var out []model.Course
	for _, c := range s.repos.Courses.List() {
		if !canView(viewer, c) {
			continue
		}
		if filter.Published != nil && c.Published != *filter.Published {
			continue
		}
		if filter.InstructorID != "" && c.InstructorID != filter.InstructorID {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(c.Category, filter.Category) {
			continue
		}
		if filter.Level != "" && c.Level != filter.Level {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// AddLesson appends a lesson; a zero order means "after the last one" and orders must be unique.
func (s *CourseService) AddLesson(courseID string, input model.LessonInput) (model.Lesson, error) {
	if err := util.ValidateStruct(input); err != nil {
		return model.Lesson{}, err
	}
	course, ok := s.repos.Courses.FindByID(s.localID(courseID))
	if !ok {
		return model.Lesson{}, util.ErrCourseNotFound
	}
	order := input.Order
	if order == 0 {
		order = course.NextLessonOrder()
	}
	for _, l := range course.Lessons {
		if l.Order == order {
			return model.Lesson{}, util.NewValidationError(util.FieldError{
				Field: "order",
				Error: fmt.Sprintf("order %d is already used by lesson %q", order, l.Title),
			})
		}
	}

	lesson := model.Lesson{
		ID:          model.GenerateUUID(),
		CourseID:    course.ID,
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		VideoURL:    input.VideoURL,
		Duration:    input.Duration,
		Order:       order,
	}
	lessons := append(course.Lessons, lesson)
	if _, err := s.UpdateCourse(course.ID, model.CourseUpdate{Lessons: &lessons}); err != nil {
		return model.Lesson{}, err
	}
	return lesson, nil
}

func (s *CourseService) RemoveLesson(courseID, lessonID string) error {
	course, ok := s.repos.Courses.FindByID(s.localID(courseID))
	if !ok {
		return util.ErrCourseNotFound
	}
	lessons := make([]model.Lesson, 0, len(course.Lessons))
	for _, l := range course.Lessons {
		if l.ID != lessonID {
			lessons = append(lessons, l)
		}
	}
	if len(lessons) == len(course.Lessons) {
		return util.ErrLessonNotFound
	}
	_, err := s.UpdateCourse(course.ID, model.CourseUpdate{Lessons: &lessons})
	return err
}

// AddQuiz appends a quiz. Questions may give either correctAnswer or correctAnswers; both are stored
// as the multi-select set.
func (s *CourseService) AddQuiz(courseID string, input model.QuizInput) (model.Quiz, error) {
	if err := util.ValidateStruct(input); err != nil {
		return model.Quiz{}, err
	}
	course, ok := s.repos.Courses.FindByID(s.localID(courseID))
	if !ok {
		return model.Quiz{}, util.ErrCourseNotFound
	}

	quiz := model.Quiz{
		ID:           model.GenerateUUID(),
		CourseID:     course.ID,
		Title:        input.Title,
		PassingScore: input.PassingScore,
		RewardPoints: input.RewardPoints,
		Order:        course.NextQuizOrder(),
	}
	for i, qi := range input.Questions {
		q := model.Question{
			ID:             model.GenerateUUID(),
			QuizID:         quiz.ID,
			Question:       qi.Question,
			Options:        append([]string(nil), qi.Options...),
			CorrectAnswer:  qi.CorrectAnswer,
			CorrectAnswers: append([]int(nil), qi.CorrectAnswers...),
			Points:         qi.Points,
		}
		q.Normalize()
		if err := checkAnswers(i, q); err != nil {
			return model.Quiz{}, err
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	quizzes := append(course.Quizzes, quiz)
	if _, err := s.UpdateCourse(course.ID, model.CourseUpdate{Quizzes: &quizzes}); err != nil {
		return model.Quiz{}, err
	}
	return quiz, nil
}

func checkAnswers(idx int, q model.Question) error {
	field := fmt.Sprintf("questions[%d]", idx)
	if len(q.CorrectAnswers) == 0 {
		return util.NewValidationError(util.FieldError{Field: field, Error: "at least one correct answer is required"})
	}
	for _, a := range q.CorrectAnswers {
		if a < 0 || a >= len(q.Options) {
			return util.NewValidationError(util.FieldError{
				Field: field,
				Error: fmt.Sprintf("correct answer %d is out of range", a),
			})
		}
	}
	return nil
}

// NextLesson returns the lesson following lessonID by order.
func (s *CourseService) NextLesson(courseID, lessonID string) (model.Lesson, bool, error) {
	return s.neighbour(courseID, lessonID, 1)
}

func (s *CourseService) PreviousLesson(courseID, lessonID string) (model.Lesson, bool, error) {
	return s.neighbour(courseID, lessonID, -1)
}

func (s *CourseService) neighbour(courseID, lessonID string, step int) (model.Lesson, bool, error) {
	course, ok := s.repos.Courses.FindByID(s.localID(courseID))
	if !ok {
		return model.Lesson{}, false, util.ErrCourseNotFound
	}
	lessons := course.OrderedLessons()
	for i, l := range lessons {
		if l.ID != lessonID {
			continue
		}
		j := i + step
		if j < 0 || j >= len(lessons) {
			return model.Lesson{}, false, nil
		}
		return lessons[j], true, nil
	}
	return model.Lesson{}, false, util.ErrLessonNotFound
}

// localID maps a temp id that was already reconciled to the server id now stored locally.
func (s *CourseService) localID(id string) string {
	if _, ok := s.repos.Courses.FindByID(id); ok {
		return id
	}
	return s.aliases.Resolve(id)
}

func (s *CourseService) enqueue(op string, run func(ctx context.Context) error) {
	if s.remote == nil || s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(syncqueue.Job{Entity: courseEntity, Op: op, Run: run}); err != nil {
		logger.Log.Warn("course sync not scheduled", zap.String("op", op), zap.Error(err))
	}
}
