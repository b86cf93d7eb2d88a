package repository

import (
	"learnhub_client/internal/model"
	"learnhub_client/pkg/kvstore"
)

type ReviewRepository struct {
	t *table[model.Review]
}

func NewReviewRepository(store *kvstore.Store) *ReviewRepository {
	return &ReviewRepository{t: newTable(store, kvstore.KeyReviews,
		func(r model.Review) string { return r.ID },
		func(r model.Review) model.Review { return r },
	)}
}

func (r *ReviewRepository) List() []model.Review {
	return r.t.all()
}

func (r *ReviewRepository) FindByCourse(courseID string) []model.Review {
	return r.t.filter(func(rv model.Review) bool { return rv.CourseID == courseID })
}

func (r *ReviewRepository) FindByUserAndCourse(userID, courseID string) (model.Review, bool) {
	return r.t.first(func(rv model.Review) bool { return rv.UserID == userID && rv.CourseID == courseID })
}

func (r *ReviewRepository) Create(rv model.Review) {
	r.t.insert(rv)
}

func (r *ReviewRepository) RemapCourse(oldID, newID string) int {
	return r.t.updateWhere(
		func(rv model.Review) bool { return rv.CourseID == oldID },
		func(rv *model.Review) { rv.CourseID = newID },
	)
}
