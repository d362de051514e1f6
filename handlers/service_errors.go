package handlers

import (
	"net/http"

	"github.com/MarcusGale/LLM-Router/services"
	"github.com/MarcusGale/LLM-Router/utils"
	"go.uber.org/zap"
)

// User-facing error bodies. Upstream failures are never described to the
// client.
const (
	msgEmptyConversation = "Please enter a message"
	msgInternal          = "Internal Server Error"
)

// HandleServiceError maps domain errors to HTTP responses. Validation errors
// are the only ones reported as such; everything else is a generic 500.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	if services.IsValidationError(err) {
		if err := utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: msgEmptyConversation}); err != nil {
			logger.Error("failed to write bad request response", zap.Error(err))
		}
		return
	}

	logger.Error("turn failed",
		zap.Error(err),
		zap.String("error_type", string(services.GetErrorType(err))),
		zap.String("error_code", services.GetErrorCode(err)),
		zap.Any("details", services.GetErrorDetails(err)))

	if err := utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse{Error: msgInternal}); err != nil {
		logger.Error("failed to write internal error response", zap.Error(err))
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{})
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	// Generic validation error
	if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
