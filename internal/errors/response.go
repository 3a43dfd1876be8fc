package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the presentable parts of an error.
type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse converts any error into the HTTP status and response body
// the REST layer should emit. Internal errors are reduced to a generic
// message so no internals leak to the client.
func NewErrorResponse(err error) (int, *ErrorResponse) {
	status := httpStatus(err)

	message := err.Error()
	var details map[string]interface{}

	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.Hint() != "" {
			message = ie.Hint()
		}
		details = ie.ReportableDetails()
	}

	if status == http.StatusInternalServerError {
		message = "something went wrong, please try again"
		details = nil
	}

	return status, &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: message,
			Details: details,
		},
	}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConfiguration):
		// Operator data gap, surfaced as a bad request so dashboards flag it
		// without paging as a 5xx.
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusUnauthorized
	case errors.Is(err, ErrExternalService),
		errors.Is(err, ErrDatabase),
		errors.Is(err, ErrInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
