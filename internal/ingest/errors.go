package ingest

import (
	"errors"
	"fmt"
)

// ErrBusy means a submission from the same modality is still in flight.
// The caller should wait for it to settle rather than resubmitting.
var ErrBusy = errors.New("a submission for this input is already in flight")

// Dictation failure modes that must be distinguished for the user.
var (
	// ErrNoSpeech means the recognizer heard nothing usable.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrPermissionDenied means microphone access was refused.
	ErrPermissionDenied = errors.New("microphone permission denied")
)

// InputRejectedError is a client-side pre-validation failure: no network
// call was issued. Rule identifies which check failed.
type InputRejectedError struct {
	Rule    string
	Message string
}

func (e *InputRejectedError) Error() string {
	return e.Message
}

// Validation rule identifiers.
const (
	RuleEmptyText    = "empty_text"
	RuleFileType     = "file_type"
	RuleFileSize     = "file_size"
	RuleMissingField = "missing_field"
)

// CapabilityError means an optional platform capability is absent. This is
// a valid, detectable state: the affordance should be disabled with the
// reason shown, never treated as a transient failure.
type CapabilityError struct {
	Capability string
	Reason     string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s is unavailable: %s", e.Capability, e.Reason)
}

// ParseError is a failed natural-language submission. Message is ready to
// show: the server's error verbatim when it gave one, otherwise a generic
// hint with an example format.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
