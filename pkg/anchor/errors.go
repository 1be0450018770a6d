package anchor

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid-input"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindIdentityMismatch    ErrorKind = "identity-mismatch"
	KindReferenceNotFound   ErrorKind = "reference-not-found"
	KindCollaboratorFailure ErrorKind = "collaborator-failure"
	KindInternal            ErrorKind = "internal-error"
)

// ErrNotFound is returned (possibly wrapped) by a LedgerReader when a
// reference does not resolve to an anchored fingerprint.
var ErrNotFound = errors.New("anchor reference not found")

// Error carries a stable kind tag and a human readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	// Stage is the terminal stage of an anchor request; empty for verification.
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.Message == "" && other.Err == nil
}

// Detail is the message followed by the underlying cause, without the kind.
func (e *Error) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ErrorKind ErrorKind `json:"errorKind"`
		Message   string    `json:"message"`
	}{e.Kind, e.Detail()})
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of an anchor error, or KindInternal for anything
// else.
func KindOf(err error) ErrorKind {
	var anchorErr *Error
	if errors.As(err, &anchorErr) {
		return anchorErr.Kind
	}
	return KindInternal
}
