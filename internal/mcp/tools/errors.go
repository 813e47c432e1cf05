package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotConnected = "NOT_CONNECTED"
	ErrCodeAuthFailed   = "AUTH_FAILED"
	ErrCodeJobFailed    = "JOB_FAILED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeSplunkError  = "SPLUNK_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapSplunkError converts a session or Splunk client error to a coded error.
func WrapSplunkError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var (
		validationErr *session.ValidationError
		jobErr        *splunk.JobFailedError
		apiErr        *splunk.APIError
		netErr        net.Error
	)

	switch {
	case errors.As(err, &validationErr):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
	case errors.Is(err, session.ErrNotConnected):
		coded = &CodedError{Code: ErrCodeNotConnected, Message: err.Error(), Cause: err}
	case errors.Is(err, splunk.ErrAuthenticationFailed):
		coded = &CodedError{Code: ErrCodeAuthFailed, Message: err.Error(), Cause: err}
	case errors.As(err, &jobErr):
		coded = &CodedError{Code: ErrCodeJobFailed, Message: err.Error(), Cause: err}
	case errors.Is(err, session.ErrSavedSearchNotFound):
		coded = &CodedError{Code: ErrCodeNotFound, Message: err.Error(), Cause: err}
	case errors.Is(err, splunk.ErrJobTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			coded = &CodedError{Code: ErrCodeAuthFailed, Message: apiErr.Message(), Cause: err}
		case http.StatusNotFound:
			coded = &CodedError{Code: ErrCodeNotFound, Message: apiErr.Message(), Cause: err}
		default:
			coded = &CodedError{Code: ErrCodeSplunkError, Message: apiErr.Message(), Cause: err}
		}
	default:
		coded = &CodedError{Code: ErrCodeSplunkError, Message: err.Error(), Cause: err}
	}

	slog.Warn("splunk operation failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
