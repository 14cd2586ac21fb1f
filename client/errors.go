package client

import (
	"fmt"
	"net/http"
	"unicode/utf8"
)

const maxErrorDataLength = 200

// TransportError means that the HTTP request could not be made, or that the server answered
// with a status outside of the 2xx range. When StatusCode is zero, Err says why no response
// was received.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
	}
	var detail string
	if e.Body != "" {
		detail = ": " + truncate(e.Body)
	}
	return fmt.Sprintf("%s %s returned HTTP %d (%s)%s",
		e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), detail)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError means that the server answered a tool call but reported that it did not
// succeed.
type ProtocolError struct {
	Tool    string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("tool call %q failed: %s", e.Tool, e.Message)
}

// DecodeError means that a response body, or the content returned by a tool, was not in the
// expected format.
type DecodeError struct {
	What string
	Data string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed %s: %s (data: %s)", e.What, e.Err, truncate(e.Data))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func truncate(s string) string {
	if len(s) <= maxErrorDataLength {
		return s
	}
	n := maxErrorDataLength
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
