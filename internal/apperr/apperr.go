package apperr

import (
	"errors"

	"github.com/google/uuid"
)

// Kind classifies a business error so the HTTP edge can map it to a status
// code without string matching.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindProtectedResource
	KindNotFound
	KindTimeZoneResolution
	KindInternal
)

// Error is a structured business error. Code is a stable machine-readable
// identifier ("time_conflict", "slot_not_found"); Message is for humans.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// ProtectedIDs carries the slot ids blocking a delete so the caller can
	// build a "cancel the appointment first" message.
	ProtectedIDs []uuid.UUID

	// Details carries structured per-field context, e.g. which template
	// ranges conflicted and why.
	Details any

	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Protected(code, message string, ids ...uuid.UUID) *Error {
	e := New(KindProtectedResource, code, message)
	e.ProtectedIDs = ids
	return e
}

func TimeZoneResolution(code, message string, cause error) *Error {
	e := New(KindTimeZoneResolution, code, message)
	e.Err = cause
	return e
}

// KindOf extracts the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf extracts the business code of err, or "" for unclassified errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
