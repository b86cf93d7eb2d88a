package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClasses(t *testing.T) {
	assert.ErrorIs(t, ErrCourseNotFound, ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("load: %w", ErrUserNotFound), ErrNotFound)
	assert.ErrorIs(t, ErrEmailRegistered, ErrConflict)
	assert.NotErrorIs(t, ErrEmailRegistered, ErrNotFound)
	assert.Equal(t, "No account found with this email", ErrUserNotFound.Error())
}

type signup struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"min=6"`
	Role     string `validate:"omitempty,oneof=learner instructor"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(signup{Name: "Ada", Email: "ada@example.com", Password: "secret"}))

	err := ValidateStruct(signup{Email: "nope", Password: "123", Role: "root"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{
		{Field: "name", Error: "name is required"},
		{Field: "email", Error: "email must be a valid email"},
		{Field: "password", Error: "password must be at least 6"},
		{Field: "role", Error: "role must be one of [learner instructor]"},
	}, verr.Fields)
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("password", "abcdef", "min=6", "too short"))
	err := ValidateVar("password", "abc", "min=6", "Password must be at least 6 characters")
	assert.EqualError(t, err, "Password must be at least 6 characters")
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, NewResult(map[string]int{"points": 10}, nil)))

	var ok map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ok))
	assert.Equal(t, true, ok["success"])
	assert.NotContains(t, ok, "error")

	res := NewResult(nil, NewValidationError(FieldError{Field: "title", Error: "title is required"}))
	assert.False(t, res.Success)
	assert.Equal(t, "title is required", res.Error)
	assert.Len(t, res.Fields, 1)

	res = NewResult(nil, ErrPermissionDenied)
	assert.Equal(t, "permission denied", res.Error)
	assert.Nil(t, res.Fields)
}
