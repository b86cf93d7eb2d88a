package model

import "sort"

type Quiz struct {
	ID           string          `json:"id"`
	CourseID     string          `json:"courseId"`
	Title        string          `json:"title"`
	Questions    []Question      `json:"questions"`
	PassingScore int             `json:"passingScore"`
	RewardPoints *RewardSchedule `json:"rewardPoints,omitempty"`
	Order        int             `json:"order"`
}

func (q Quiz) Clone() Quiz {
	cp := q
	cp.Questions = make([]Question, len(q.Questions))
	for i, qu := range q.Questions {
		cp.Questions[i] = qu.Clone()
	}
	if q.RewardPoints != nil {
		rp := *q.RewardPoints
		cp.RewardPoints = &rp
	}
	return cp
}

func (q Quiz) TotalPoints() int {
	total := 0
	for _, qu := range q.Questions {
		total += qu.Points
	}
	return total
}

// RewardSchedule maps an attempt number to the points awarded for passing on it.
type RewardSchedule struct {
	First      int `json:"first"`
	Second     int `json:"second"`
	Third      int `json:"third"`
	FourthPlus int `json:"fourthPlus"`
}

func (r RewardSchedule) ForAttempt(n int) int {
	switch {
	case n <= 1:
		return r.First
	case n == 2:
		return r.Second
	case n == 3:
		return r.Third
	}
	return r.FourthPlus
}

type Question struct {
	ID       string   `json:"id"`
	QuizID   string   `json:"quizId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// CorrectAnswer is the legacy single-answer field; Normalize folds it into CorrectAnswers.
	CorrectAnswer  *int  `json:"correctAnswer,omitempty"`
	CorrectAnswers []int `json:"correctAnswers,omitempty"`
	Points         int   `json:"points"`
}

func (q Question) Clone() Question {
	cp := q
	cp.Options = append([]string(nil), q.Options...)
	cp.CorrectAnswers = append([]int(nil), q.CorrectAnswers...)
	if q.CorrectAnswer != nil {
		v := *q.CorrectAnswer
		cp.CorrectAnswer = &v
	}
	return cp
}

// AcceptedAnswers returns the sorted, de-duplicated set of correct option indexes.
func (q Question) AcceptedAnswers() []int {
	src := q.CorrectAnswers
	if len(src) == 0 && q.CorrectAnswer != nil {
		src = []int{*q.CorrectAnswer}
	}
	return sortedSet(src)
}

func (q *Question) Normalize() {
	q.CorrectAnswers = q.AcceptedAnswers()
	q.CorrectAnswer = nil
}

// IsCorrect reports whether selected is exactly the accepted set.
func (q Question) IsCorrect(selected []int) bool {
	accepted := q.AcceptedAnswers()
	if len(accepted) == 0 {
		return false
	}
	got := sortedSet(selected)
	if len(got) != len(accepted) {
		return false
	}
	for i := range got {
		if got[i] != accepted[i] {
			return false
		}
	}
	return true
}

func sortedSet(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	out := append([]int(nil), in...)
	sort.Ints(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
