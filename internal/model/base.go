package model

import (
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix marks ids assigned locally before the server confirmed a create.
const TempIDPrefix = "temp-"

func GenerateUUID() string {
	return uuid.New().String()
}

// NewTempID returns a time-ordered temporary id.
func NewTempID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return TempIDPrefix + uuid.New().String()
	}
	return TempIDPrefix + id.String()
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}
