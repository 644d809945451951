package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by the services. Handlers map these to HTTP
// statuses in one place.
var (
	// ErrNotFound covers both genuinely missing rows and rows owned by
	// another user; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateCategory  = errors.New("category name already exists")
)

// ValidationError carries field-keyed messages so the rendering layer can
// attach them to the originating form.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
