package snapshot

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a remote resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ValidationError reports a missing or invalid request parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NotFoundError reports that a resource the request depends on does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s is not found", e.Resource, e.ID)
}

// Is makes NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ErrorKind classifies remote failures.
type ErrorKind string

// Error kinds.
const (
	KindUnknown     ErrorKind = "unknown"
	KindNotFound    ErrorKind = "not_found"
	KindPermission  ErrorKind = "permission"
	KindRateLimited ErrorKind = "rate_limited"
	KindConflict    ErrorKind = "conflict"
	KindInvalid     ErrorKind = "invalid"
	KindTransient   ErrorKind = "transient"
)

// BackendError is a failed remote call with its classified kind.
type BackendError struct {
	Op   string
	ID   string
	Kind ErrorKind
	Err  error
}

func (e *BackendError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s failed (%s): %v", e.Op, e.ID, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is makes a not_found BackendError match ErrNotFound.
func (e *BackendError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// KindOf returns the kind of the first BackendError in err's chain.
// Errors that carry no kind are KindUnknown; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindUnknown
}

// asBackendError wraps err as a BackendError for op unless it already is one.
func asBackendError(op, id string, err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	kind := KindUnknown
	if errors.Is(err, ErrNotFound) {
		kind = KindNotFound
	}
	return &BackendError{Op: op, ID: id, Kind: kind, Err: err}
}
