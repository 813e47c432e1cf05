package splunk

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrAuthenticationFailed is returned when Splunk rejects the credentials.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrJobTimeout is returned when a search job is still running after the
// configured job timeout.
var ErrJobTimeout = errors.New("search job did not finish in time")

// Message is a single entry from the "messages" array Splunk attaches to
// responses and job status.
type Message struct {
	Type string
	Text string
}

// APIError represents a non-2xx response from the Splunk REST API.
type APIError struct {
	StatusCode int
	Messages   []Message
	Body       string // raw body when Splunk sent no structured messages
}

func (e *APIError) Error() string {
	return fmt.Sprintf("splunk API error (status %d): %s", e.StatusCode, e.Message())
}

// Message joins the Splunk messages into a single line.
func (e *APIError) Message() string {
	if len(e.Messages) > 0 {
		return joinMessages(e.Messages)
	}
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.StatusCode)
}

// JobFailedError is returned when Splunk reports a search job as failed.
type JobFailedError struct {
	SID           string
	DispatchState string
	Messages      []Message
}

func (e *JobFailedError) Error() string {
	msg := fmt.Sprintf("search job %s failed (dispatch state %s)", e.SID, e.DispatchState)
	if len(e.Messages) > 0 {
		msg += ": " + joinMessages(e.Messages)
	}
	return msg
}

// parseError extracts an APIError from an error response body.
func parseError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		apiErr.Messages = parseMessages(gjson.GetBytes(body, "messages"))
	}
	if len(apiErr.Messages) == 0 {
		apiErr.Body = strings.TrimSpace(string(body))
	}
	return apiErr
}

// parseMessages reads a Splunk messages value. Job status uses either an
// array of {type, text} objects or an object keyed by severity.
func parseMessages(v gjson.Result) []Message {
	var msgs []Message
	switch {
	case v.IsArray():
		for _, m := range v.Array() {
			if text := m.Get("text").String(); text != "" {
				msgs = append(msgs, Message{Type: m.Get("type").String(), Text: text})
			}
		}
	case v.IsObject():
		v.ForEach(func(key, value gjson.Result) bool {
			for _, text := range value.Array() {
				msgs = append(msgs, Message{Type: strings.ToUpper(key.String()), Text: text.String()})
			}
			return true
		})
	}
	return msgs
}

func joinMessages(msgs []Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Type != "" {
			parts = append(parts, m.Type+": "+m.Text)
		} else {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "; ")
}
