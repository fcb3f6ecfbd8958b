package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyVoted         = errors.New("this email has already voted")
	ErrCountryNotFound      = errors.New("country not found")
	ErrDirectoryUnavailable = errors.New("country directory unavailable")
	ErrInternal             = errors.New("internal server error")
)

// ValidationError carries per-field messages for a rejected vote payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
