package repository

import "learnhub_client/pkg/kvstore"

// Repositories groups the local collections that share one kvstore.
type Repositories struct {
	Users       *UserRepository
	Courses     *CourseRepository
	Enrollments *EnrollmentRepository
	Reviews     *ReviewRepository
}

func NewRepositories(store *kvstore.Store) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(store),
		Courses:     NewCourseRepository(store),
		Enrollments: NewEnrollmentRepository(store),
		Reviews:     NewReviewRepository(store),
	}
}

// RemapCourse points every reference to oldID at newID and reports how many records changed.
func (r *Repositories) RemapCourse(oldID, newID string) int {
	return r.Enrollments.RemapCourse(oldID, newID) +
		r.Reviews.RemapCourse(oldID, newID) +
		r.Users.RemapCourse(oldID, newID)
}
