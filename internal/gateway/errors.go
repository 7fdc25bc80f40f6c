package gateway

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Failure classification for gateway calls. Callers branch with errors.Is;
// transport and unexpected-response failures are surfaced to the user as a
// generic notice, application failures carry backend prose verbatim.
var (
	// ErrTransport marks a request that produced no response at all.
	ErrTransport = errors.New("transport failure")
	// ErrUnexpectedResponse marks a response body that is not JSON,
	// typically an upstream error page returned with status 200.
	ErrUnexpectedResponse = errors.New("unexpected response")
	// ErrApplication marks a well-formed response with success=false.
	ErrApplication = errors.New("application error")
)

// snippetLimit bounds how much of a non-JSON body is kept for diagnosis.
const snippetLimit = 100

// Error is the concrete error returned by gateway calls, keeping the
// classification together with the text a caller may show the user.
type Error struct {
	kind    error
	message string
	cause   error
}

func newTransportError(err error) *Error {
	return &Error{kind: ErrTransport, cause: err}
}

func newUnexpectedResponseError(body []byte) *Error {
	return &Error{kind: ErrUnexpectedResponse, message: Snippet(string(body))}
}

func newApplicationError(message string) *Error {
	if strings.TrimSpace(message) == "" {
		message = "the server reported a failure"
	}
	return &Error{kind: ErrApplication, message: message}
}

func (e *Error) Error() string {
	switch {
	case e.cause != nil && e.message != "":
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.kind, e.cause)
	case e.message != "":
		return fmt.Sprintf("%s: %s", e.kind, e.message)
	default:
		return e.kind.Error()
	}
}

func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

// Message returns the backend-provided prose for application errors, or the
// body snippet for unexpected responses. May contain embedded newlines that
// should render as line breaks.
func (e *Error) Message() string { return e.message }

// UserMessage extracts text suitable for showing the user. Application
// error messages come back verbatim; everything else gets a generic notice.
func UserMessage(err error) string {
	var gerr *Error
	if errors.As(err, &gerr) && errors.Is(err, ErrApplication) {
		return gerr.Message()
	}
	return "A communication error occurred. Please try again."
}

// Snippet truncates a raw body for log and error output.
func Snippet(body string) string {
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) <= snippetLimit {
		return body
	}
	runes := []rune(body)
	return string(runes[:snippetLimit]) + "..."
}
