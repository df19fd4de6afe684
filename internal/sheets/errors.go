package sheets

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ExternalServiceError wraps a failure of the remote spreadsheet service:
// authentication, transport, or an API-level rejection.
type ExternalServiceError struct {
	Op         string // "authenticate", "lookup", or "write"
	StatusCode int    // HTTP status when the API answered, 0 otherwise
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("spreadsheet %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("spreadsheet %s failed: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func externalError(op string, err error) error {
	e := &ExternalServiceError{Op: op, Err: err}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		e.StatusCode = apiErr.Code
	}
	return e
}
