package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studentsites/internal/dto"
	apperrors "studentsites/internal/errors"
)

func TestError_MapsTypedErrors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "validation",
			err:            apperrors.NewValidationError("Invalid status value.", apperrors.ValidationDetail{Field: "status", Message: "bad"}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeValidation,
			expectedMsg:    "Invalid status value.",
		},
		{
			name:           "wrapped not found",
			err:            fmt.Errorf("lookup: %w", apperrors.NewNotFoundError("Order not found.")),
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeNotFound,
			expectedMsg:    "Order not found.",
		},
		{
			name:           "conflict",
			err:            apperrors.NewConflictError("order cannot move from Completed to Pending"),
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeConflict,
			expectedMsg:    "order cannot move from Completed to Pending",
		},
		{
			name:           "persistence failure hides the cause",
			err:            apperrors.NewPersistenceError("inserting order", errors.New("password=hunter2")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternal,
			expectedMsg:    "an unexpected error occurred",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			Error(rec, tc.err, zap.NewNop())

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.expectedCode, body.Error)
			assert.Equal(t, tc.expectedMsg, body.Message)
		})
	}
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	Message(rec, http.StatusCreated, "Order received successfully!", zap.NewNop())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Order received successfully!"}`, rec.Body.String())
}
