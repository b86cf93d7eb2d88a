package model

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	Admin      UserRole = "admin"
	Instructor UserRole = "instructor"
	Learner    UserRole = "learner"
	Guest      UserRole = "guest"
)

func (r UserRole) Valid() bool {
	switch r {
	case Admin, Instructor, Learner, Guest:
		return true
	}
	return false
}

type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            UserRole  `json:"role"`
	Avatar          string    `json:"avatar,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Points          int       `json:"points"`
	Badges          []Badge   `json:"badges"`
	EnrolledCourses []string  `json:"enrolledCourses"`
	PasswordHash    string    `json:"passwordHash,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UnmarshalJSON also accepts the backend's "_id" key.
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.LegacyID
	}
	return nil
}

func (u User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (u User) IsEnrolled(courseID string) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

func (u User) Clone() User {
	c := u
	c.Badges = append([]Badge(nil), u.Badges...)
	c.EnrolledCourses = append([]string(nil), u.EnrolledCourses...)
	return c
}

// Public strips credentials before the user leaves the local registry.
func (u User) Public() User {
	c := u.Clone()
	c.PasswordHash = ""
	return c
}

type ProfileUpdate struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,max=255"`
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}

func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
}
