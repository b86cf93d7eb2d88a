package service

import (
	"math"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
)

type EnrollmentSummary struct {
	EnrollmentID string                 `json:"enrollmentId"`
	CourseID     string                 `json:"courseId"`
	CourseTitle  string                 `json:"courseTitle"`
	Progress     float64                `json:"progress"`
	Status       model.EnrollmentStatus `json:"status"`
}

type LearnerDashboard struct {
	User             model.User          `json:"user"`
	Enrollments      []EnrollmentSummary `json:"enrollments"`
	InProgress       int                 `json:"inProgress"`
	CompletedCourses int                 `json:"completedCourses"`
	NextBadge        *model.Badge        `json:"nextBadge,omitempty"`
}

type CourseStats struct {
	CourseID     string  `json:"courseId"`
	Title        string  `json:"title"`
	Published    bool    `json:"published"`
	Students     int     `json:"students"`
	Completions  int     `json:"completions"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
}

type InstructorDashboard struct {
	Courses       []CourseStats `json:"courses"`
	TotalStudents int           `json:"totalStudents"`
	AverageRating float64       `json:"averageRating"`
}

type AdminDashboard struct {
	TotalUsers           int                    `json:"totalUsers"`
	UsersByRole          map[model.UserRole]int `json:"usersByRole"`
	TotalCourses         int                    `json:"totalCourses"`
	PublishedCourses     int                    `json:"publishedCourses"`
	TotalEnrollments     int                    `json:"totalEnrollments"`
	CompletedEnrollments int                    `json:"completedEnrollments"`
	TotalReviews         int                    `json:"totalReviews"`
}

type DashboardService struct {
	repos   *repository.Repositories
	session *SessionService
	policy  *AccessPolicy
}

func NewDashboardService(repos *repository.Repositories, session *SessionService, policy *AccessPolicy) *DashboardService {
	return &DashboardService{repos: repos, session: session, policy: policy}
}

func (s *DashboardService) Learner() (*LearnerDashboard, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, util.ErrNotAuthenticated
	}
	d := &LearnerDashboard{User: user, Enrollments: []EnrollmentSummary{}}
	for _, e := range s.repos.Enrollments.FindByUser(user.ID) {
		title := e.CourseID
		if c, found := s.repos.Courses.FindByID(e.CourseID); found {
			title = c.Title
		}
		d.Enrollments = append(d.Enrollments, EnrollmentSummary{
			EnrollmentID: e.ID,
			CourseID:     e.CourseID,
			CourseTitle:  title,
			Progress:     e.Progress,
			Status:       e.Status,
		})
		if e.IsCompleted() {
			d.CompletedCourses++
		} else {
			d.InProgress++
		}
	}
	d.NextBadge = NextBadge(user, user.Points)
	return d, nil
}

// Instructor summarises the current user's own courses; admins see every course.
func (s *DashboardService) Instructor() (*InstructorDashboard, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, util.ErrNotAuthenticated
	}
	if user.Role != model.Instructor && user.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	courses := s.repos.Courses.FindByInstructor(user.ID)
	if user.Role == model.Admin {
		courses = s.repos.Courses.List()
	}

	d := &InstructorDashboard{Courses: []CourseStats{}}
	ratingSum, rated := 0.0, 0
	for _, c := range courses {
		st := CourseStats{
			CourseID:     c.ID,
			Title:        c.Title,
			Published:    c.Published,
			Rating:       c.Rating,
			ReviewsCount: c.ReviewsCount,
		}
		for _, e := range s.repos.Enrollments.FindByCourse(c.ID) {
			st.Students++
			if e.IsCompleted() {
				st.Completions++
			}
		}
		d.TotalStudents += st.Students
		if c.ReviewsCount > 0 {
			ratingSum += c.Rating
			rated++
		}
		d.Courses = append(d.Courses, st)
	}
	if rated > 0 {
		d.AverageRating = math.Round(ratingSum/float64(rated)*10) / 10
	}
	return d, nil
}

func (s *DashboardService) Admin() (*AdminDashboard, error) {
	if !s.policy.CanManageUsers() {
		return nil, util.ErrPermissionDenied
	}
	d := &AdminDashboard{UsersByRole: map[model.UserRole]int{}}
	for _, u := range s.repos.Users.List() {
		d.TotalUsers++
		d.UsersByRole[u.Role]++
	}
	for _, c := range s.repos.Courses.List() {
		d.TotalCourses++
		if c.Published {
			d.PublishedCourses++
		}
	}
	for _, e := range s.repos.Enrollments.List() {
		d.TotalEnrollments++
		if e.IsCompleted() {
			d.CompletedEnrollments++
		}
	}
	d.TotalReviews = len(s.repos.Reviews.List())
	return d, nil
}
