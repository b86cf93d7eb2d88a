package model

import "time"

type EnrollmentStatus string

const (
	InProgress EnrollmentStatus = "in-progress"
	Completed  EnrollmentStatus = "completed"
)

type Enrollment struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	CourseID         string           `json:"courseId"`
	EnrolledAt       time.Time        `json:"enrolledAt"`
	Progress         float64          `json:"progress"`
	CompletedLessons []string         `json:"completedLessons"`
	QuizAttempts     []QuizAttempt    `json:"quizAttempts"`
	Status           EnrollmentStatus `json:"status"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
	LastAccessedAt   *time.Time       `json:"lastAccessedAt,omitempty"`
}

type QuizAttempt struct {
	ID            string           `json:"id"`
	QuizID        string           `json:"quizId"`
	Answers       map[string][]int `json:"answers"`
	Score         int              `json:"score"`
	TotalPoints   int              `json:"totalPoints"`
	Percentage    float64          `json:"percentage"`
	Passed        bool             `json:"passed"`
	AttemptNumber int              `json:"attemptNumber"`
	PointsAwarded int              `json:"pointsAwarded"`
	SubmittedAt   time.Time        `json:"submittedAt"`
}

func (e Enrollment) HasCompleted(lessonID string) bool {
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (e Enrollment) AttemptsFor(quizID string) int {
	n := 0
	for _, a := range e.QuizAttempts {
		if a.QuizID == quizID {
			n++
		}
	}
	return n
}

func (e Enrollment) IsCompleted() bool {
	return e.Status == Completed
}

func (e Enrollment) Clone() Enrollment {
	cp := e
	cp.CompletedLessons = append([]string(nil), e.CompletedLessons...)
	cp.QuizAttempts = make([]QuizAttempt, len(e.QuizAttempts))
	for i, a := range e.QuizAttempts {
		ac := a
		ac.Answers = make(map[string][]int, len(a.Answers))
		for k, v := range a.Answers {
			ac.Answers[k] = append([]int(nil), v...)
		}
		cp.QuizAttempts[i] = ac
	}
	if e.CompletedAt != nil {
		t := *e.CompletedAt
		cp.CompletedAt = &t
	}
	if e.LastAccessedAt != nil {
		t := *e.LastAccessedAt
		cp.LastAccessedAt = &t
	}
	return cp
}
