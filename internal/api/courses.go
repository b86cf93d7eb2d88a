package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"learnhub_client/internal/model"
)

// ListCourses calls GET /courses; the response may be a bare array or {"courses": [...]}.
func (c *Client) ListCourses(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	q := url.Values{}
	if filter.Published != nil {
		q.Set("published", strconv.FormatBool(*filter.Published))
	}
	if filter.InstructorID != "" {
		q.Set("instructorId", filter.InstructorID)
	}
	path := "/courses"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeCourseList(raw)
}

func decodeCourseList(raw json.RawMessage) ([]model.Course, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '[' {
		var courses []model.Course
		err := json.Unmarshal(raw, &courses)
		return courses, err
	}
	var wrapped struct {
		Courses []model.Course `json:"courses"`
		Data    []model.Course `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Courses != nil {
		return wrapped.Courses, nil
	}
	return wrapped.Data, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	if err := c.doJSON(ctx, http.MethodGet, "/courses/"+url.PathEscape(id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse posts the course without id and timestamps and returns the server's copy.
func (c *Client) CreateCourse(ctx context.Context, course model.Course) (*model.Course, error) {
	payload := newCoursePayload(course)
	var created model.Course
	if err := c.doJSON(ctx, http.MethodPost, "/courses", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, update model.CourseUpdate) (*model.Course, error) {
	var updated model.Course
	if err := c.doJSON(ctx, http.MethodPut, "/courses/"+url.PathEscape(id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/courses/"+url.PathEscape(id), nil, nil)
}

type coursePayload struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Thumbnail      string            `json:"thumbnail,omitempty"`
	InstructorID   string            `json:"instructorId"`
	InstructorName string            `json:"instructorName"`
	Category       string            `json:"category"`
	Level          model.CourseLevel `json:"level"`
	Price          float64           `json:"price"`
	Rating         float64           `json:"rating"`
	ReviewsCount   int               `json:"reviewsCount"`
	StudentsCount  int               `json:"studentsCount"`
	Published      bool              `json:"published"`
	AllowGuests    bool              `json:"allowGuests"`
	Lessons        []model.Lesson    `json:"lessons"`
	Quizzes        []model.Quiz      `json:"quizzes"`
}

func newCoursePayload(c model.Course) coursePayload {
	return coursePayload{
		Title:          c.Title,
		Description:    c.Description,
		Thumbnail:      c.Thumbnail,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName,
		Category:       c.Category,
		Level:          c.Level,
		Price:          c.Price,
		Rating:         c.Rating,
		ReviewsCount:   c.ReviewsCount,
		StudentsCount:  c.StudentsCount,
		Published:      c.Published,
		AllowGuests:    c.AllowGuests,
		Lessons:        c.Lessons,
		Quizzes:        c.Quizzes,
	}
}
