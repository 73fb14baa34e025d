package datasource

import (
	"errors"
	"fmt"
)

// Error codes used by DataSourceError.
const (
	ErrCodeNetworkError      = "network_error"
	ErrCodeTimeout           = "timeout"
	ErrCodeHTTPError         = "http_error"
	ErrCodeMissingCredential = "missing_credential"
	ErrCodeMalformedResponse = "malformed_response"
	ErrCodeProviderDisabled  = "provider_disabled"
)

// Sentinel errors matched through errors.Is against a DataSourceError.
var (
	ErrNetwork           = errors.New("network error")
	ErrTimeout           = errors.New("request timed out")
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrMissingCredential = errors.New("missing credential")
	ErrMalformedResponse = errors.New("malformed response")
	ErrProviderDisabled  = errors.New("provider disabled")
)

var sentinels = map[string]error{
	ErrCodeNetworkError:      ErrNetwork,
	ErrCodeTimeout:           ErrTimeout,
	ErrCodeHTTPError:         ErrHTTPStatus,
	ErrCodeMissingCredential: ErrMissingCredential,
	ErrCodeMalformedResponse: ErrMalformedResponse,
	ErrCodeProviderDisabled:  ErrProviderDisabled,
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source     string // Data source name
	Code       string // Error code (e.g., "timeout")
	Message    string // Error message
	StatusCode int    // HTTP status for http_error, zero otherwise
	Err        error  // Underlying error
}

func (e *DataSourceError) Error() string {
	msg := e.Source + ": " + e.Code + ": " + e.Message
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status=%d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

// Unwrap exposes the underlying error.
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error's code.
func (e *DataSourceError) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) *DataSourceError {
	return &DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewHTTPStatusError creates an http_error carrying the upstream status code.
func NewHTTPStatusError(source string, statusCode int, body string) *DataSourceError {
	msg := fmt.Sprintf("unexpected status %d", statusCode)
	if body != "" {
		msg += ": " + body
	}
	return &DataSourceError{
		Source:     source,
		Code:       ErrCodeHTTPError,
		Message:    msg,
		StatusCode: statusCode,
	}
}

// AsDataSourceError attempts to unwrap an error into a DataSourceError.
func AsDataSourceError(err error) (*DataSourceError, bool) {
	var dsErr *DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	if dsErr, ok := AsDataSourceError(err); ok {
		return dsErr.StatusCode
	}
	return 0
}

// Code returns the error code carried by err, or "unknown".
func Code(err error) string {
	if dsErr, ok := AsDataSourceError(err); ok {
		return dsErr.Code
	}
	return "unknown"
}
