// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts engine errors to appropriate HTTP responses

package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"contractes-api/api/dto/responses"
	"contractes-api/core/errors"
)

// toHumaError converts engine errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	// The dataset could not be fetched: distinct from an empty result
	if errors.IsUnavailable(err) {
		return &responses.ErrorResponse{
			Status:  http.StatusServiceUnavailable,
			State:   responses.StateDataUnavailable,
			Message: "Contract data is temporarily unavailable, please retry later",
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
