package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

func TestWrapSplunkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"validation", &session.ValidationError{Problems: []string{"query is required"}}, ErrCodeInvalidInput},
		{"not connected", session.ErrNotConnected, ErrCodeNotConnected},
		{"bad credentials", fmt.Errorf("%w: Login failed", splunk.ErrAuthenticationFailed), ErrCodeAuthFailed},
		{"expired session", &splunk.APIError{StatusCode: http.StatusUnauthorized}, ErrCodeAuthFailed},
		{"job failed", &splunk.JobFailedError{SID: "1", DispatchState: "FAILED"}, ErrCodeJobFailed},
		{"saved search missing", fmt.Errorf("%w: nope", session.ErrSavedSearchNotFound), ErrCodeNotFound},
		{"endpoint missing", &splunk.APIError{StatusCode: http.StatusNotFound}, ErrCodeNotFound},
		{"job timeout", splunk.ErrJobTimeout, ErrCodeTimeout},
		{"deadline", fmt.Errorf("waiting: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"server error", &splunk.APIError{StatusCode: 500, Body: "boom"}, ErrCodeSplunkError},
		{"other", errors.New("connection refused"), ErrCodeSplunkError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapSplunkError(tt.err)
			var coded *CodedError
			assert.ErrorAs(t, err, &coded)
			assert.Equal(t, tt.code, coded.Code)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWrapSplunkError_Nil(t *testing.T) {
	assert.NoError(t, WrapSplunkError(nil))
}

func TestWrapSplunkError_KeepsCodedError(t *testing.T) {
	in := ErrInvalidInput("bad filter")
	assert.Same(t, in, WrapSplunkError(in))
}

func TestCodedError_Message(t *testing.T) {
	err := WrapSplunkError(session.ErrNotConnected)
	assert.Equal(t, "NOT_CONNECTED: not connected to Splunk: call configure first", err.Error())

	err = WrapSplunkError(&splunk.APIError{StatusCode: 500, Body: "boom"})
	assert.Equal(t, "SPLUNK_ERROR: boom: splunk API error (status 500): boom", err.Error())
}
