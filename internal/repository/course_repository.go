package repository

import (
	"learnhub_client/internal/model"
	"learnhub_client/pkg/kvstore"
)

type CourseRepository struct {
	t *table[model.Course]
}

func NewCourseRepository(store *kvstore.Store) *CourseRepository {
	t := newTable(store, kvstore.KeyCourses,
		func(c model.Course) string { return c.ID },
		func(c model.Course) model.Course { return c.Clone() },
	)
	// 旧数据里的单选题统一迁移到多选结构
	for i := range t.items {
		t.items[i].Normalize()
	}
	return &CourseRepository{t: t}
}

func (r *CourseRepository) List() []model.Course {
	return r.t.all()
}

func (r *CourseRepository) FindByID(id string) (model.Course, bool) {
	return r.t.get(id)
}

func (r *CourseRepository) FindByInstructor(instructorID string) []model.Course {
	return r.t.filter(func(c model.Course) bool { return c.InstructorID == instructorID })
}

func (r *CourseRepository) Count() int {
	return r.t.count()
}

func (r *CourseRepository) Create(course model.Course) {
	course.Normalize()
	r.t.insert(course)
}

func (r *CourseRepository) Update(id string, fn func(*model.Course)) (model.Course, bool) {
	return r.t.update(id, func(c *model.Course) {
		fn(c)
		c.Normalize()
	})
}

// ReplaceID substitutes the entry holding oldID with course, keeping its position.
func (r *CourseRepository) ReplaceID(oldID string, course model.Course) bool {
	course.Normalize()
	return r.t.replace(oldID, course)
}

func (r *CourseRepository) Delete(id string) bool {
	return r.t.remove(id)
}

// ReplaceAll swaps the whole catalog; courses itself is left untouched.
func (r *CourseRepository) ReplaceAll(courses []model.Course) {
	normalized := make([]model.Course, len(courses))
	for i, c := range courses {
		normalized[i] = c.Clone()
		normalized[i].Normalize()
	}
	r.t.replaceAll(normalized)
}
