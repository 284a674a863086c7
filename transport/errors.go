package transport

import (
	"errors"
	"net/http"

	"github.com/tidwall/gjson"
)

// Kind classifies a non-200 response.
type Kind int

const (
	KindUnknown Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindNotAcceptable
	KindServerError
	KindNotImplemented
)

// Sentinels for errors.Is. Each matches every *Error of its kind.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrNotAcceptable  = errors.New("not acceptable")
	ErrServerError    = errors.New("server error")
	ErrNotImplemented = errors.New("not implemented")
	ErrUnknown        = errors.New("unknown error")
)

var kindSentinels = map[Kind]error{
	KindBadRequest:     ErrBadRequest,
	KindUnauthorized:   ErrUnauthorized,
	KindForbidden:      ErrForbidden,
	KindNotFound:       ErrNotFound,
	KindNotAcceptable:  ErrNotAcceptable,
	KindServerError:    ErrServerError,
	KindNotImplemented: ErrNotImplemented,
	KindUnknown:        ErrUnknown,
}

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindNotAcceptable:
		return "NotAcceptable"
	case KindServerError:
		return "ServerError"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Error is a response the remote service rejected.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// classify maps a status code onto the error taxonomy. It returns nil for 200.
func classify(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = "No message provided"
		}
		e.Kind, e.Message = KindBadRequest, "Bad Request: "+msg
	case http.StatusUnauthorized:
		e.Kind, e.Message = KindUnauthorized, "Unauthorized: API token was missing or incorrect."
	case http.StatusForbidden:
		e.Kind, e.Message = KindForbidden, "Forbidden: You do not have permissions to use the API."
	case http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, "Not Found: The URI requested is invalid or the resource does not exist."
	case http.StatusNotAcceptable:
		e.Kind, e.Message = KindNotAcceptable, "Not Acceptable: The data being imported was formatted incorrectly."
	case http.StatusInternalServerError:
		e.Kind, e.Message = KindServerError, "Internal Server Error: The server encountered an error processing your request."
	case http.StatusNotImplemented:
		e.Kind, e.Message = KindNotImplemented, "Not Implemented: The requested method is not implemented."
	default:
		e.Kind, e.Message = KindUnknown, "Unknown issue."
	}
	return e
}

// KindOf returns the kind of a transport error, and false for any other error.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindUnknown, false
}
