package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeExternal, "upstream failed", baseErr)

	assert.Equal(t, ErrorTypeExternal, domainErr.Type)
	assert.Equal(t, "upstream failed", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.Empty(t, domainErr.Code)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name:    "error with wrapped error",
			err:     ErrClassificationUnavailable.Wrap(errors.New("timeout")),
			wantMsg: "external: classification unavailable (timeout)",
		},
		{
			name:    "error without wrapped error",
			err:     ErrEmptyConversation,
			wantMsg: "validation: please enter a message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Wrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := ErrCompletionUnavailable.Wrap(cause)

	assert.Equal(t, cause, errors.Unwrap(wrapped))
	assert.Nil(t, ErrCompletionUnavailable.Err, "sentinel must not be mutated")
	assert.Equal(t, CodeCompletionUnavailable, wrapped.Code)
}

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "same code",
			err:    ErrClassificationUnavailable.Wrap(errors.New("x")),
			target: ErrClassificationUnavailable,
			want:   true,
		},
		{
			name:   "same type different code",
			err:    ErrCompletionUnavailable.Wrap(errors.New("x")),
			target: ErrClassificationUnavailable,
			want:   false,
		},
		{
			name:   "uncoded target matches on type",
			err:    ErrCompletionUnavailable,
			target: NewDomainError(ErrorTypeExternal, "any external", nil),
			want:   true,
		},
		{
			name:   "wrapped with fmt.Errorf",
			err:    fmt.Errorf("routing: %w", ErrClassificationUnavailable.Wrap(errors.New("x"))),
			target: ErrClassificationUnavailable,
			want:   true,
		},
		{
			name:   "non-domain error",
			err:    errors.New("plain"),
			target: ErrEmptyConversation,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorTypeInternal, "boom", nil).
		WithDetail("model", "openai/gpt-5-mini").
		WithDetail("attempt", 1)

	require.Len(t, err.Details, 2)
	assert.Equal(t, "openai/gpt-5-mini", err.Details["model"])
	assert.Equal(t, 1, GetErrorDetails(err)["attempt"])
}

func TestTypeHelpers(t *testing.T) {
	assert.True(t, IsValidationError(ErrEmptyConversation))
	assert.False(t, IsValidationError(ErrClassificationUnavailable))

	assert.True(t, IsExternalError(ErrClassificationUnavailable))
	assert.True(t, IsExternalError(fmt.Errorf("wrapped: %w", ErrCompletionUnavailable)))
	assert.False(t, IsExternalError(errors.New("plain")))

	assert.True(t, IsInternalError(ErrUnknownIdentifier))
	assert.True(t, IsInternalError(WrapInternal("render failed", errors.New("x"))))

	assert.Equal(t, ErrorTypeExternal, GetErrorType(ErrCompletionUnavailable))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
	assert.Equal(t, CodeUnknownIdentifier, GetErrorCode(ErrUnknownIdentifier))
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
