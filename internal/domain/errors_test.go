package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors(t *testing.T) {
	t.Run("empty errors report generic message", func(t *testing.T) {
		errs := &ValidationErrors{}

		assert.False(t, errs.HasErrors())
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("message is the first field error", func(t *testing.T) {
		errs := &ValidationErrors{}
		errs.Add("page", "page must be at least 1")
		errs.Add("per_page", "per_page must be between 1 and 100")

		assert.True(t, errs.HasErrors())
		assert.Equal(t, "page must be at least 1", errs.Error())
		assert.Equal(t, map[string]string{
			"page":     "page must be at least 1",
			"per_page": "per_page must be between 1 and 100",
		}, errs.ToMap())
	})

	t.Run("first error per field wins in map", func(t *testing.T) {
		errs := &ValidationErrors{}
		errs.Add("date", "first")
		errs.Add("date", "second")

		assert.Equal(t, "first", errs.ToMap()["date"])
	})

	t.Run("matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("search: %w", NewValidationError("date", "bad date"))

		assert.True(t, errors.Is(err, ErrValidation))
		assert.False(t, errors.Is(err, ErrBackendUnavailable))

		var verrs *ValidationErrors
		assert.True(t, errors.As(err, &verrs))
		assert.Equal(t, "bad date", verrs.ToMap()["date"])
	})
}

func TestBackendError(t *testing.T) {
	tests := []struct {
		name         string
		store        string
		cause        error
		wantContains []string
	}{
		{
			name:         "message includes store and cause",
			store:        "postgres",
			cause:        errors.New("connection refused"),
			wantContains: []string{"backend unavailable", "postgres", "connection refused"},
		},
		{
			name:         "deadline exceeded cause",
			store:        "sqlite",
			cause:        context.DeadlineExceeded,
			wantContains: []string{"sqlite", "deadline exceeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackendError(tt.store, tt.cause)

			for _, want := range tt.wantContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.True(t, errors.Is(err, ErrBackendUnavailable))
			assert.True(t, errors.Is(err, tt.cause), "cause must stay reachable")
			assert.False(t, errors.Is(err, ErrValidation))
		})
	}
}
