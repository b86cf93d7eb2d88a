package repository

import (
	"learnhub_client/internal/model"
	"learnhub_client/pkg/kvstore"
)

type EnrollmentRepository struct {
	t *table[model.Enrollment]
}

func NewEnrollmentRepository(store *kvstore.Store) *EnrollmentRepository {
	return &EnrollmentRepository{t: newTable(store, kvstore.KeyEnrollments,
		func(e model.Enrollment) string { return e.ID },
		func(e model.Enrollment) model.Enrollment { return e.Clone() },
	)}
}

func (r *EnrollmentRepository) List() []model.Enrollment {
	return r.t.all()
}

func (r *EnrollmentRepository) FindByID(id string) (model.Enrollment, bool) {
	return r.t.get(id)
}

// FindByUserAndCourse returns the first enrollment for the pair; duplicates may exist.
func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID string) (model.Enrollment, bool) {
	return r.t.first(func(e model.Enrollment) bool { return e.UserID == userID && e.CourseID == courseID })
}

func (r *EnrollmentRepository) FindByUser(userID string) []model.Enrollment {
	return r.t.filter(func(e model.Enrollment) bool { return e.UserID == userID })
}

func (r *EnrollmentRepository) FindByCourse(courseID string) []model.Enrollment {
	return r.t.filter(func(e model.Enrollment) bool { return e.CourseID == courseID })
}

func (r *EnrollmentRepository) Count() int {
	return r.t.count()
}

func (r *EnrollmentRepository) Create(e model.Enrollment) {
	r.t.insert(e)
}

func (r *EnrollmentRepository) Update(id string, fn func(*model.Enrollment)) (model.Enrollment, bool) {
	return r.t.update(id, fn)
}

func (r *EnrollmentRepository) RemapCourse(oldID, newID string) int {
	return r.t.updateWhere(
		func(e model.Enrollment) bool { return e.CourseID == oldID },
		func(e *model.Enrollment) { e.CourseID = newID },
	)
}
