package dto

import apperrors "studentsites/internal/errors"

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}
