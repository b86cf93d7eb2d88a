package util

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrAuth               = errors.New("Incorrect password")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrSubmissionConflict = errors.New("You have already reviewed this course")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotCompleted = errors.New("course not completed yet")

	// 具体的 not found / conflict，errors.Is 同时匹配其类别
	ErrUserNotFound       = classErr("No account found with this email", ErrNotFound)
	ErrCourseNotFound     = classErr("course not found", ErrNotFound)
	ErrLessonNotFound     = classErr("lesson not found", ErrNotFound)
	ErrQuizNotFound       = classErr("quiz not found", ErrNotFound)
	ErrEnrollmentNotFound = classErr("enrollment not found", ErrNotFound)
	ErrEmailRegistered    = classErr("An account with this email already exists", ErrConflict)
)

type classError struct {
	msg   string
	class error
}

func classErr(msg string, class error) error {
	return &classError{msg: msg, class: class}
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Is(target error) bool { return target == e.class }

// FieldError describes a single invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(flds ...FieldError) error {
	return &ValidationError{Fields: flds}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
