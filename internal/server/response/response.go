package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"studentsites/internal/dto"
	apperrors "studentsites/internal/errors"
)

const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeRateLimited = "RATE_LIMITED"
	CodeInternal    = "INTERNAL_ERROR"
)

func JSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func Message(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	JSON(w, status, dto.MessageResponse{Message: message}, logger)
}

func Validation(w http.ResponseWriter, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	JSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error:   CodeValidation,
		Message: message,
		Details: details,
	}, logger)
}

// Error maps a typed application error to its HTTP status. Anything
// unrecognised is logged and answered with a generic 500.
func Error(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		Validation(w, ve.Message, logger, ve.Details...)
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		JSON(w, http.StatusNotFound, dto.ErrorResponse{Error: CodeNotFound, Message: nf.Message}, logger)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		JSON(w, http.StatusConflict, dto.ErrorResponse{Error: CodeConflict, Message: ce.Message}, logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	JSON(w, http.StatusInternalServerError, dto.ErrorResponse{
		Error:   CodeInternal,
		Message: "an unexpected error occurred",
	}, logger)
}
