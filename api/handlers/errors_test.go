package handlers

import (
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractes-api/api/dto/responses"
	"contractes-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "q", Message: "query too long"},
			expectedStatus: 400,
			expectedInMsg:  "query too long",
		},
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "company", ID: "x"},
			expectedStatus: 404,
			expectedInMsg:  "company not found",
		},
		{
			name:           "TransportError returns 503",
			input:          fmt.Errorf("fetching contract snapshot: %w", &errors.TransportError{Op: "fetch"}),
			expectedStatus: 503,
			expectedInMsg:  "unavailable",
		},
		{
			name:           "HTTPStatusError returns 503",
			input:          &errors.HTTPStatusError{StatusCode: 500},
			expectedStatus: 503,
			expectedInMsg:  "unavailable",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("boom"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)
			require.Error(t, result)

			statusErr, ok := result.(huma.StatusError)
			require.True(t, ok, "expected huma.StatusError, got %T", result)
			assert.Equal(t, tt.expectedStatus, statusErr.GetStatus())
			assert.Contains(t, result.Error(), tt.expectedInMsg)
		})
	}

	assert.NoError(t, toHumaError(nil))
}

func TestToHumaError_UnavailableState(t *testing.T) {
	result := toHumaError(&errors.TransportError{Op: "read"})

	resp, ok := result.(*responses.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, responses.StateDataUnavailable, resp.State)
}
