package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lari1230/fiml/internal/errs"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindTransport is a network-level failure (dial, DNS, reset, context).
	KindTransport Kind = iota + 1
	// KindProtocol is a non-JSON response body where JSON was expected,
	// e.g. an HTML 404 page or an auth redirect.
	KindProtocol
	// KindDecode is a JSON body with the right content type that does not parse.
	KindDecode
	// KindHTTP is a parsed JSON response carried on a non-2xx status.
	KindHTTP
	// KindDomain is a 2xx response whose envelope reports success=false.
	KindDomain
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	case KindHTTP:
		return "http"
	case KindDomain:
		return "domain"
	}
	return "unknown"
}

// Error is the failure surface of the gateway. Callers branch on Kind with
// errors.As, or on the usual sentinels with errors.Is.
type Error struct {
	Kind        Kind
	Status      int    // HTTP status, when one was received
	ContentType string // observed content type, for KindProtocol
	Message     string
	cause       error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.cause }

// Is maps HTTP statuses onto the shared sentinels so callers can write
// errors.Is(err, errs.ErrUnauthorized) without knowing about this package.
func (e *Error) Is(target error) bool {
	switch target {
	case errs.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case errs.ErrForbidden:
		return e.Status == http.StatusForbidden
	case errs.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func transportErr(cause error) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf("request failed: %v", cause), cause: cause}
}

func protocolErr(status int, contentType string) *Error {
	return &Error{
		Kind:        KindProtocol,
		Status:      status,
		ContentType: contentType,
		Message:     fmt.Sprintf("expected JSON response, got %q", contentType),
	}
}

func decodeErr(status int, cause error) *Error {
	return &Error{Kind: KindDecode, Status: status, Message: fmt.Sprintf("malformed JSON body: %v", cause), cause: cause}
}

func httpErr(status int, envelopeError string) *Error {
	msg := envelopeError
	if msg == "" {
		msg = fmt.Sprintf("HTTP error: %d", status)
	}
	return &Error{Kind: KindHTTP, Status: status, Message: msg}
}

func domainErr(message string) *Error {
	if message == "" {
		message = "request rejected"
	}
	return &Error{Kind: KindDomain, Message: message}
}
