package api

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind classifies a request failure for retry and messaging decisions.
type Kind string

const (
	// KindNotFound is a 404: the resource genuinely is not there. Terminal,
	// never retried.
	KindNotFound Kind = "not_found"
	// KindServerError is a 5xx response. Retried within the resource budget.
	KindServerError Kind = "server_error"
	// KindTransientNetwork is a network-level failure with no response at
	// all (timeout, connection reset, refused). Retried like a 5xx.
	KindTransientNetwork Kind = "transient_network"
	// KindClient is any other 4xx. Terminal; the request itself is wrong.
	KindClient Kind = "client_error"
)

// Error is a classified request failure. StatusCode is zero for
// network-level failures. ServerMessage carries the message field of an
// error response body when the server sent one.
type Error struct {
	StatusCode    int
	Kind          Kind
	ServerMessage string
	Err           error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: request failed with status %d (%s)", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("api: request failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth another attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindServerError || e.Kind == KindTransientNetwork
}

// UserMessage maps the failure to the message shown to the user.
func (e *Error) UserMessage() string {
	if e.Kind == KindTransientNetwork {
		return "Unable to reach the server. Please check your connection and try again."
	}
	switch e.StatusCode {
	case 504:
		return "The server is taking too long to respond. Please try again later."
	case 502:
		return "The service is temporarily unavailable. Please try again in a moment."
	case 503:
		return "The service is unavailable right now. Please try again later."
	case 500:
		return "We are experiencing technical difficulties. Please try again later."
	case 404:
		return "The requested resource was not found."
	default:
		if e.ServerMessage != "" {
			return e.ServerMessage
		}
		return "Something went wrong. Please try again."
	}
}

// classifyStatus buckets an HTTP status into a failure kind.
func classifyStatus(status int) Kind {
	switch {
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServerError
	default:
		return KindClient
	}
}

// classifyTransportError wraps a transport-level failure. Everything that
// produced no HTTP response is treated as transient: timeouts, resets,
// refused connections, DNS hiccups.
func classifyTransportError(err error) *Error {
	return &Error{
		Kind: KindTransientNetwork,
		Err:  err,
	}
}

// IsConnectionError reports whether an error is a low-level connection
// failure (reset, refused, aborted) as opposed to a timeout.
func IsConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNABORTED) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// AsError extracts the classified *Error from an error chain, if present.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage returns the user-facing message for any error. Unclassified
// errors fall back to the generic message.
func UserMessage(err error) string {
	if apiErr, ok := AsError(err); ok {
		return apiErr.UserMessage()
	}
	return "Something went wrong. Please try again."
}
