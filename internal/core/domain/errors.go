package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidID    = errors.New("invalid user id format")
	ErrEmptyPatch   = errors.New("no fields supplied for update")
	ErrHobbiesFull  = fmt.Errorf("hobbies list cannot exceed %d entries", MaxHobbies)
	ErrNoSuchHobby  = errors.New("hobby not present on user")
)

// MalformedRequestError flags a request that cannot be interpreted at all:
// a bad enum value, a missing required query parameter, a non-numeric number.
type MalformedRequestError struct {
	Field   string
	Message string
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewMalformedRequest(field, message string) error {
	return &MalformedRequestError{Field: field, Message: message}
}

// ValidationErrors maps a field name to the first violation found for it.
type ValidationErrors map[string]string

func (ve ValidationErrors) Error() string {
	fields := make([]string, 0, len(ve))
	for f := range ve {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+ve[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a violation unless the field already has one, so the first
// failed check per field wins.
func (ve ValidationErrors) Add(field, message string) {
	if _, seen := ve[field]; !seen {
		ve[field] = message
	}
}
