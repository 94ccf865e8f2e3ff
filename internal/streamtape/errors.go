package streamtape

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindValidation is a local parameter check that failed before any
	// upstream call.
	KindValidation Kind = iota + 1
	// KindUpstreamRejected means the envelope carried a status other than 200.
	KindUpstreamRejected
	// KindTransport means the outbound call did not complete.
	KindTransport
	// KindUpstreamHTTP means the upstream answered with a non-2xx status.
	KindUpstreamHTTP
	// KindInvalidPayload means the result did not match the expected shape.
	KindInvalidPayload
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindTransport:
		return "transport"
	case KindUpstreamHTTP:
		return "upstream_http"
	case KindInvalidPayload:
		return "invalid_payload"
	default:
		return "unknown"
	}
}

// UnknownAPIError is the detail used when the envelope carries no msg.
const UnknownAPIError = "Unknown API error"

// Error is returned by every failing gateway and service call. StatusCode is
// the HTTP status the local API answers with.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("streamtape %s (%d): %s: %v", e.Kind, e.StatusCode, e.Detail, e.Err)
	}
	return fmt.Sprintf("streamtape %s (%d): %s", e.Kind, e.StatusCode, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// envelopeStatusMap translates envelope status codes that have a direct HTTP
// counterpart. Anything else becomes 500.
var envelopeStatusMap = map[int]int{
	400: http.StatusBadRequest,
	403: http.StatusForbidden,
	404: http.StatusNotFound,
	451: http.StatusUnavailableForLegalReasons,
	509: http.StatusServiceUnavailable,
}

// StatusForEnvelope maps an envelope status to the HTTP status reported to
// the local client.
func StatusForEnvelope(status int) int {
	if code, ok := envelopeStatusMap[status]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// NewValidationError builds a 400 error for a locally rejected request.
func NewValidationError(format string, args ...any) *Error {
	return &Error{
		Kind:       KindValidation,
		StatusCode: http.StatusBadRequest,
		Detail:     fmt.Sprintf(format, args...),
	}
}

func newTransportError(err error) *Error {
	return &Error{
		Kind:       KindTransport,
		StatusCode: http.StatusServiceUnavailable,
		Detail:     fmt.Sprintf("Could not connect to Streamtape API: %v", err),
		Err:        err,
	}
}

func newHTTPError(status int, body []byte) *Error {
	return &Error{
		Kind:       KindUpstreamHTTP,
		StatusCode: status,
		Detail:     fmt.Sprintf("HTTP error occurred: %s", body),
	}
}

func newRejectedError(status *int, msg *string) *Error {
	detail := UnknownAPIError
	if msg != nil {
		detail = *msg
	}
	code := http.StatusInternalServerError
	if status != nil {
		code = StatusForEnvelope(*status)
	}
	return &Error{
		Kind:       KindUpstreamRejected,
		StatusCode: code,
		Detail:     detail,
	}
}

// NewInvalidPayloadError reports a result that could not be shaped into the
// endpoint's response type.
func NewInvalidPayloadError(endpoint string, err error) *Error {
	return &Error{
		Kind:       KindInvalidPayload,
		StatusCode: http.StatusInternalServerError,
		Detail:     fmt.Sprintf("unexpected payload from %s", endpoint),
		Err:        err,
	}
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
