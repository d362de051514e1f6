package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MarcusGale/LLM-Router/services"
	"github.com/MarcusGale/LLM-Router/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "empty conversation",
			err:            services.ErrEmptyConversation,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Please enter a message",
		},
		{
			name:           "wrapped empty conversation",
			err:            fmt.Errorf("turn: %w", services.ErrEmptyConversation),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Please enter a message",
		},
		{
			name:           "classification unavailable",
			err:            services.ErrClassificationUnavailable.Wrap(errors.New("timeout")),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal Server Error",
		},
		{
			name:           "completion unavailable",
			err:            services.ErrCompletionUnavailable.Wrap(errors.New("401 invalid key")),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal Server Error",
		},
		{
			name:           "unknown identifier",
			err:            services.ErrUnknownIdentifier,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal Server Error",
		},
		{
			name:           "unknown error type",
			err:            errors.New("some random error"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			HandleServiceError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, map[string]interface{}{"error": tt.expectedError}, response)
		})
	}
}

func TestHandleServiceError_Nil(t *testing.T) {
	w := httptest.NewRecorder()

	HandleServiceError(w, nil, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleValidationError(t *testing.T) {
	logger := zap.NewNop()

	t.Run("validation error with fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := &utils.ValidationError{
			Message: "Validation failed",
			Fields: map[string]string{
				"Role": "Role must be one of: system user assistant",
			},
		}

		HandleValidationError(w, err, logger)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "bad_request", response.Error)
		assert.Equal(t, "Validation failed", response.Message)
		assert.Contains(t, response.Details, "Role")
	})

	t.Run("generic error", func(t *testing.T) {
		w := httptest.NewRecorder()

		HandleValidationError(w, errors.New("invalid input"), logger)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "invalid input", response.Message)
	})
}
