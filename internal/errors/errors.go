// Package errors provides the error types produced by chat backend exchanges.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// Sentinel errors for common cases
var (
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrEmptyMessage    = errors.New("message cannot be empty")
)

// ErrorKind classifies a failed exchange with a backend
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindStatus
	KindConnection
	KindUnexpected
)

// String returns the kind name used in logs and metrics
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindStatus:
		return "status"
	case KindConnection:
		return "connection"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// StatusError represents a backend answering with a non-200 status
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status code %d", e.StatusCode)
}

// NewStatusError creates a new StatusError
func NewStatusError(statusCode int, endpoint string) *StatusError {
	return &StatusError{StatusCode: statusCode, Endpoint: endpoint}
}

// WithBody attaches a (truncated) response body for diagnostics
func (e *StatusError) WithBody(body string) *StatusError {
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	e.Body = body
	return e
}

// ConnectionError represents a backend that could not be reached at all
type ConnectionError struct {
	Backend  string
	Port     int
	Endpoint string
	Cause    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("Cannot connect to %s API. Make sure the server is running on port %d", e.Backend, e.Port)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(backend string, port int, endpoint string, cause error) *ConnectionError {
	return &ConnectionError{
		Backend:  backend,
		Port:     port,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

// UnexpectedError wraps any other failure during an exchange
type UnexpectedError struct {
	Operation string
	Cause     error
}

func (e *UnexpectedError) Error() string {
	if e.Cause == nil {
		return e.Operation
	}
	return e.Cause.Error()
}

func (e *UnexpectedError) Unwrap() error {
	return e.Cause
}

// NewUnexpectedError creates a new UnexpectedError
func NewUnexpectedError(operation string, cause error) *UnexpectedError {
	return &UnexpectedError{Operation: operation, Cause: cause}
}

// ParseError represents a 200 response whose body could not be understood
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error: %s (field %q)", e.Message, e.Path)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsStatusError reports whether err is a non-200 response
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// IsConnectionError reports whether err means the backend was unreachable
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsTimeoutError reports whether err was caused by a deadline
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// GetHTTPStatus returns the status code carried by err, or 0
func GetHTTPStatus(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Kind classifies err into the exchange error taxonomy
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case IsStatusError(err):
		return KindStatus
	case IsConnectionError(err):
		return KindConnection
	default:
		return KindUnexpected
	}
}

// IsDialFailure reports whether a transport error happened while
// establishing the connection. Timeouts are not dial failures.
func IsDialFailure(err error) bool {
	if err == nil || IsTimeoutError(err) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// Some transports flatten the chain into a message
	var urlErr *url.Error
	msg := err.Error()
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dial tcp")
}

// DisplayText renders err as chat content
func DisplayText(err error) string {
	if err == nil {
		return ""
	}
	return "❌ Error: " + err.Error()
}
