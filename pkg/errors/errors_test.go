package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("fetch courses: %w", Clone(ErrUpstreamFetch, "courses.list failed"))
	appErr := FromError(wrapped)
	assert.Equal(t, ErrUpstreamFetch.Code, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, "courses.list failed", appErr.Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.EqualError(t, appErr, "internal server error: boom")
}

func TestIsComparesCodes(t *testing.T) {
	err := Wrap(errors.New("no token"), ErrNotAuthenticated.Code, ErrNotAuthenticated.Status, "session expired")
	assert.True(t, Is(err, ErrNotAuthenticated))
	assert.False(t, Is(err, ErrUpstreamFetch))
	assert.False(t, Is(nil, ErrNotAuthenticated))
	assert.True(t, errors.Is(ErrCacheMiss, ErrCacheMiss))
}

func TestValidationListsFields(t *testing.T) {
	req := struct {
		CourseID string `validate:"required"`
		PageSize int    `validate:"omitempty,min=1,max=1000"`
	}{PageSize: 5000}

	appErr := Validation(validator.New().Struct(req), "invalid roster query")

	assert.True(t, Is(appErr, ErrValidation))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Len(t, appErr.Details, 2)
	assert.Equal(t, FieldError{Field: "CourseID", Rule: "required"}, appErr.Details[0])
	assert.Equal(t, FieldError{Field: "PageSize", Rule: "max", Param: "1000"}, appErr.Details[1])
}

func TestValidationWithPlainError(t *testing.T) {
	appErr := Validation(errors.New("bad"), "invalid")
	assert.Empty(t, appErr.Details)
	assert.Equal(t, "invalid: bad", appErr.Error())
}
