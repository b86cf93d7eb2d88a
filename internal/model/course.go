package model

import (
	"encoding/json"
	"sort"
	"time"
)

type CourseLevel string

const (
	Beginner     CourseLevel = "beginner"
	Intermediate CourseLevel = "intermediate"
	Advanced     CourseLevel = "advanced"
)

type Course struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Thumbnail      string      `json:"thumbnail,omitempty"`
	InstructorID   string      `json:"instructorId"`
	InstructorName string      `json:"instructorName"`
	Category       string      `json:"category"`
	Level          CourseLevel `json:"level"`
	Price          float64     `json:"price"`
	Rating         float64     `json:"rating"`
	ReviewsCount   int         `json:"reviewsCount"`
	StudentsCount  int         `json:"studentsCount"`
	Published      bool        `json:"published"`
	AllowGuests    bool        `json:"allowGuests"`
	Lessons        []Lesson    `json:"lessons"`
	Quizzes        []Quiz      `json:"quizzes"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// UnmarshalJSON also accepts the backend's "_id" key.
func (c *Course) UnmarshalJSON(b []byte) error {
	type alias Course
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.LegacyID
	}
	return nil
}

type Lesson struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Duration    int    `json:"duration"`
	Order       int    `json:"order"`
}

func (c Course) Clone() Course {
	cp := c
	cp.Lessons = append([]Lesson(nil), c.Lessons...)
	cp.Quizzes = make([]Quiz, len(c.Quizzes))
	for i, q := range c.Quizzes {
		cp.Quizzes[i] = q.Clone()
	}
	return cp
}

func (c Course) Lesson(id string) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

func (c Course) Quiz(id string) (Quiz, bool) {
	for _, q := range c.Quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return Quiz{}, false
}

// OrderedLessons returns the lessons sorted by Order.
func (c Course) OrderedLessons() []Lesson {
	ls := append([]Lesson(nil), c.Lessons...)
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].Order < ls[j].Order })
	return ls
}

func (c Course) NextLessonOrder() int {
	max := 0
	for _, l := range c.Lessons {
		if l.Order > max {
			max = l.Order
		}
	}
	return max + 1
}

func (c Course) NextQuizOrder() int {
	max := 0
	for _, q := range c.Quizzes {
		if q.Order > max {
			max = q.Order
		}
	}
	return max + 1
}

// Normalize moves every question onto the multi-select answer schema.
func (c *Course) Normalize() {
	for i := range c.Quizzes {
		for j := range c.Quizzes[i].Questions {
			c.Quizzes[i].Questions[j].Normalize()
		}
	}
}

type CourseInput struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Description    string      `json:"description" validate:"max=5000"`
	Thumbnail      string      `json:"thumbnail,omitempty"`
	InstructorID   string      `json:"instructorId"`
	InstructorName string      `json:"instructorName"`
	Category       string      `json:"category"`
	Level          CourseLevel `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price          float64     `json:"price" validate:"gte=0"`
	Published      bool        `json:"published"`
	AllowGuests    bool        `json:"allowGuests"`
	Lessons        []Lesson    `json:"lessons"`
	Quizzes        []Quiz      `json:"quizzes"`
}

// CourseUpdate is a partial course; nil fields are left untouched.
type CourseUpdate struct {
	Title          *string      `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string      `json:"description,omitempty"`
	Thumbnail      *string      `json:"thumbnail,omitempty"`
	InstructorID   *string      `json:"instructorId,omitempty"`
	InstructorName *string      `json:"instructorName,omitempty"`
	Category       *string      `json:"category,omitempty"`
	Level          *CourseLevel `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price          *float64     `json:"price,omitempty" validate:"omitempty,gte=0"`
	Rating         *float64     `json:"rating,omitempty"`
	ReviewsCount   *int         `json:"reviewsCount,omitempty"`
	StudentsCount  *int         `json:"studentsCount,omitempty"`
	Published      *bool        `json:"published,omitempty"`
	AllowGuests    *bool        `json:"allowGuests,omitempty"`
	Lessons        *[]Lesson    `json:"lessons,omitempty"`
	Quizzes        *[]Quiz      `json:"quizzes,omitempty"`
}

func (u CourseUpdate) Apply(c *Course) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Thumbnail != nil {
		c.Thumbnail = *u.Thumbnail
	}
	if u.InstructorID != nil {
		c.InstructorID = *u.InstructorID
	}
	if u.InstructorName != nil {
		c.InstructorName = *u.InstructorName
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.Level != nil {
		c.Level = *u.Level
	}
	if u.Price != nil {
		c.Price = *u.Price
	}
	if u.Rating != nil {
		c.Rating = *u.Rating
	}
	if u.ReviewsCount != nil {
		c.ReviewsCount = *u.ReviewsCount
	}
	if u.StudentsCount != nil {
		c.StudentsCount = *u.StudentsCount
	}
	if u.Published != nil {
		c.Published = *u.Published
	}
	if u.AllowGuests != nil {
		c.AllowGuests = *u.AllowGuests
	}
	if u.Lessons != nil {
		c.Lessons = append([]Lesson(nil), (*u.Lessons)...)
	}
	if u.Quizzes != nil {
		c.Quizzes = make([]Quiz, len(*u.Quizzes))
		for i, q := range *u.Quizzes {
			c.Quizzes[i] = q.Clone()
		}
	}
}

type CourseFilter struct {
	Published    *bool
	InstructorID string
	Category     string
	Level        CourseLevel
	Search       string
}

type LessonInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Order       int    `json:"order" validate:"gte=0"`
}

type QuestionInput struct {
	Question       string   `json:"question" validate:"required"`
	Options        []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer  *int     `json:"correctAnswer,omitempty"`
	CorrectAnswers []int    `json:"correctAnswers,omitempty"`
	Points         int      `json:"points" validate:"gte=0"`
}

type QuizInput struct {
	Title        string          `json:"title" validate:"required,max=200"`
	PassingScore int             `json:"passingScore" validate:"gte=0,lte=100"`
	RewardPoints *RewardSchedule `json:"rewardPoints,omitempty"`
	Questions    []QuestionInput `json:"questions" validate:"min=1,dive"`
}
