package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind tags the failure variant of a request.
type Kind int

const (
	// KindTransport covers network failures: dial, TLS, reset, cancelled context.
	KindTransport Kind = iota + 1
	// KindStatus is a response outside the 2xx range.
	KindStatus
	// KindDecode is a 2xx response whose body is not valid JSON for the target.
	KindDecode
	// KindEncode is a request payload that could not be serialized.
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is the single failure type returned by the client.
type Error struct {
	Kind     Kind
	Method   string
	Endpoint string

	// Set for KindStatus.
	StatusCode int
	// Detail is the parsed (camelCased) error body, or its raw text when the
	// body is not JSON.
	Detail any

	Err error
}

func (e *Error) Error() string {
	prefix := e.Method + " " + e.Endpoint
	switch e.Kind {
	case KindStatus:
		msg := fmt.Sprintf("%s: %d %s", prefix, e.StatusCode, http.StatusText(e.StatusCode))
		if d := detailMessage(e.Detail); d != "" {
			msg += ": " + d
		}
		return msg
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", prefix, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s error", prefix, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the failure kind of err, or 0 when err is nil or did not
// come from the client.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindStatus && e.StatusCode == http.StatusNotFound
}

// detailMessage pulls a human-readable message out of an error body.
// Backends answer with {"detail": "..."} or {"message": "..."}.
func detailMessage(d any) string {
	switch x := d.(type) {
	case map[string]any:
		for _, k := range []string{"detail", "message", "error"} {
			if s, ok := x[k].(string); ok && s != "" {
				return s
			}
		}
	case string:
		return strings.TrimSpace(x)
	}
	return ""
}
