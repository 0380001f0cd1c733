package gemini

import (
	"fmt"
)

// ConnectionError means the API could not be reached or did not answer in
// time.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("Failed to connect to Gemini API: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error        { return e.Err }
func (e *ConnectionError) Kind() string         { return "connection_error" }
func (e *ConnectionError) UpstreamStatus() int  { return 0 }
func (e *ConnectionError) UpstreamBody() string { return "" }

// UpstreamError is a non-200 answer. The status and body are kept verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return "Failed to fetch description from Gemini API"
}

func (e *UpstreamError) Kind() string         { return "upstream_error" }
func (e *UpstreamError) UpstreamStatus() int  { return e.StatusCode }
func (e *UpstreamError) UpstreamBody() string { return e.Body }

// DecodeError is a 200 answer whose body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Invalid JSON response from Gemini API: %v", e.Err)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) Kind() string         { return "decode_error" }
func (e *DecodeError) UpstreamStatus() int  { return 0 }
func (e *DecodeError) UpstreamBody() string { return "" }
