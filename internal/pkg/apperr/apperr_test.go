package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("title", "Title is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", NewValidation("title", "x")), http.StatusBadRequest},
		{"unsupported media", ErrUnsupportedMedia, http.StatusBadRequest},
		{"too large", fmt.Errorf("upload: %w", ErrPayloadTooLarge), http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"auth", ErrAuth, http.StatusUnauthorized},
		{"dependency", Dependency("media", errors.New("dial tcp")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestDependencyKeepsKnownErrors(t *testing.T) {
	assert.Same(t, ErrNotFound, Dependency("repository", ErrNotFound))

	err := Dependency("repository", errors.New("connection refused"))
	assert.True(t, IsDependency(err))
	assert.Contains(t, err.Error(), "repository unavailable")
	assert.Nil(t, Dependency("repository", nil))
}

func TestValidationError(t *testing.T) {
	var v ValidationError
	assert.True(t, v.Empty())
	assert.NoError(t, (&v).OrNil())

	v.Add("title", "Title is required")
	v.Add("title", "ignored")
	v.Add("category", "Invalid category")
	assert.Equal(t, "Title is required", v.Fields["title"])
	assert.Equal(t, "validation failed: category: Invalid category; title: Title is required", v.Error())
	assert.Error(t, v.OrNil())
}
