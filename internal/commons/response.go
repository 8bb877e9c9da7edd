package commons

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, message string, details ...apperrors.ValidationDetail) {
	if details == nil {
		details = []apperrors.ValidationDetail{}
	}
	WriteJSON(w, logger, http.StatusBadRequest, dto.ValidationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func WriteNotFound(w http.ResponseWriter, logger *zap.Logger, message string) {
	WriteJSON(w, logger, http.StatusNotFound, dto.ErrorResponse{
		Error:   "NOT_FOUND",
		Message: message,
	})
}

// WriteInternalError never exposes the underlying cause to the client.
func WriteInternalError(w http.ResponseWriter, logger *zap.Logger) {
	WriteJSON(w, logger, http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	})
}

// WriteError maps application errors onto HTTP responses.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, logger, ve.Message, ve.Details...)
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		WriteNotFound(w, logger, nf.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	WriteInternalError(w, logger)
}
