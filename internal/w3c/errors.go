package w3c

import (
	"fmt"
	"strings"
)

// TransportError means the request never produced a response: DNS, refused
// connection, timeout, cancellation.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string // first bytes of the body, for context
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s answered %s", e.Endpoint, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" && !strings.HasPrefix(body, "<") {
		msg += ": " + firstLine(body)
	}
	return msg
}

// DecodeError is a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	Endpoint    string
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("malformed response from %s (%s): %v", e.Endpoint, e.ContentType, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
