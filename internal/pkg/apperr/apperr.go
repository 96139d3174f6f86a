// Package apperr defines the error taxonomy shared by the repository, media
// store, publishing service and HTTP surface.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("not found")

	// ErrAuth covers missing, malformed, expired and revoked credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrUnsupportedMedia is returned for non-image uploads or disallowed formats.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrPayloadTooLarge is returned when an upload exceeds the size ceiling.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// ValidationError carries field-level messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidation builds a ValidationError from field/message pairs.
func NewValidation(kv ...string) *ValidationError {
	v := &ValidationError{Fields: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Fields[kv[i]] = kv[i+1]
	}
	return v
}

// Add records a message for field, keeping the first message per field.
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = map[string]string{}
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

// Empty reports whether no field failed.
func (v *ValidationError) Empty() bool { return v == nil || len(v.Fields) == 0 }

// OrNil returns nil when no field failed so it can be returned as an error.
func (v *ValidationError) OrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	if v.Empty() {
		return "validation failed"
	}
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DependencyError wraps failures of the repository or media store backends.
type DependencyError struct {
	Component string
	Err       error
}

// Dependency wraps err as a DependencyError unless it is already part of the
// taxonomy, in which case it is returned unchanged.
func Dependency(component string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &DependencyError{Component: component, Err: err}
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Component, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsDependency reports whether err is (or wraps) a DependencyError.
func IsDependency(err error) bool {
	var d *DependencyError
	return errors.As(err, &d)
}

// IsKnown reports whether err already belongs to the taxonomy.
func IsKnown(err error) bool {
	return IsValidation(err) || IsDependency(err) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrUnsupportedMedia) || errors.Is(err, ErrPayloadTooLarge)
}

// HTTPStatus maps an error to the status code the HTTP surface responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err), errors.Is(err, ErrUnsupportedMedia), errors.Is(err, ErrPayloadTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
