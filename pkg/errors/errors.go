package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by how the console must react to it.
type Kind int

const (
	KindInternal Kind = iota
	// KindNetwork: the request never reached the backend or no response came back.
	KindNetwork
	// KindUnauthorized: bad credentials, or an expired/invalid token.
	KindUnauthorized
	// KindValidation: non-2xx with a structured detail from the backend, or a local form check.
	KindValidation
	// KindNotFound: the entity is gone (deleted elsewhere, or unknown id).
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkFailure"
	case KindUnauthorized:
		return "Unauthorized"
	case KindValidation:
		return "ValidationFailure"
	case KindNotFound:
		return "NotFound"
	default:
		return "Internal"
	}
}

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode is the HTTP status a page reporting e should carry.
func (e *AppError) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindNetwork:
		return http.StatusBadGateway
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Network(err error) *AppError {
	return &AppError{
		Kind:    KindNetwork,
		Message: "backend unreachable",
		Err:     err,
	}
}

func Unauthorized(detail string) *AppError {
	if detail == "" {
		detail = "unauthorized"
	}
	return &AppError{
		Kind:    KindUnauthorized,
		Status:  http.StatusUnauthorized,
		Message: detail,
	}
}

func Validation(status int, detail string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  status,
		Message: detail,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal error",
		Err:     err,
	}
}

// KindOf reports the kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusOf is StatusCode for the first AppError in err's chain, or 500.
func StatusOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage renders err for display. A structured detail from the
// backend wins; otherwise a generic sentence for the kind is used.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return "Something went wrong. Please try again."
	}
	switch appErr.Kind {
	case KindValidation, KindNotFound:
		if appErr.Message != "" {
			return appErr.Message
		}
		return "The request was rejected by the server."
	case KindUnauthorized:
		return "Your session has expired. Please sign in again."
	case KindNetwork:
		return "Unable to reach the server. Check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
