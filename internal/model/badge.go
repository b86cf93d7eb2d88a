package model

import "time"

type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Threshold   int        `json:"threshold"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
}

type Certificate struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	CourseID       string    `json:"courseId"`
	CourseTitle    string    `json:"courseTitle"`
	InstructorName string    `json:"instructorName"`
	CompletedAt    time.Time `json:"completedAt"`
	IssuedAt       time.Time `json:"issuedAt"`
}
