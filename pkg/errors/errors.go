package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClaimNotFound    = errors.New("claim not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmptyUpload      = errors.New("uploaded file is empty")
	ErrBlobMissing      = errors.New("stored file is missing")
)

// FieldViolation describes a single failed constraint on an input field.
type FieldViolation struct {
	Field   string
	Value   interface{}
	Message string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError carries every constraint violated by an input, so the
// caller can surface them all at once.
type ValidationError struct {
	Violations []FieldViolation
}

func (e ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

func NewValidationError(violations ...FieldViolation) error {
	return ValidationError{Violations: violations}
}

// TransitionError reports a state change the claim lifecycle does not permit.
type TransitionError struct {
	ClaimID string
	From    string
	Action  string
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("claim %s: cannot %s from status %s", e.ClaimID, e.Action, e.From)
}

func NewTransitionError(claimID, from, action string) error {
	return TransitionError{ClaimID: claimID, From: from, Action: action}
}
