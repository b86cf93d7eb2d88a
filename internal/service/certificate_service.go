package service

import (
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"

	"github.com/google/uuid"
)

type CertificateService struct {
	repos   *repository.Repositories
	session *SessionService
}

func NewCertificateService(repos *repository.Repositories, session *SessionService) *CertificateService {
	return &CertificateService{repos: repos, session: session}
}

// Certificate is derived from the current user's completed enrollment. The id is stable per enrollment.
func (s *CertificateService) Certificate(courseID string) (model.Certificate, error) {
	user, ok := s.session.Current()
	if !ok {
		return model.Certificate{}, util.ErrNotAuthenticated
	}
	course, ok := s.repos.Courses.FindByID(courseID)
	if !ok {
		return model.Certificate{}, util.ErrCourseNotFound
	}

	var done *model.Enrollment
	for _, e := range s.repos.Enrollments.FindByUser(user.ID) {
		if e.CourseID == course.ID && e.IsCompleted() {
			done = &e
			break
		}
	}
	if done == nil {
		if _, enrolled := s.repos.Enrollments.FindByUserAndCourse(user.ID, course.ID); !enrolled {
			return model.Certificate{}, util.ErrEnrollmentNotFound
		}
		return model.Certificate{}, util.ErrCourseNotCompleted
	}

	completedAt := done.EnrolledAt
	if done.CompletedAt != nil {
		completedAt = *done.CompletedAt
	}
	return model.Certificate{
		ID:             uuid.NewSHA1(uuid.NameSpaceURL, []byte("learnhub:certificate:"+done.ID)).String(),
		UserID:         user.ID,
		UserName:       user.Name,
		CourseID:       course.ID,
		CourseTitle:    course.Title,
		InstructorName: course.InstructorName,
		CompletedAt:    completedAt,
		IssuedAt:       time.Now(),
	}, nil
}
