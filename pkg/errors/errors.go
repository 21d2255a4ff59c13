// Package errors provides structured error handling for otp76.
// It defines sentinel errors, exit codes, and helpers for attaching
// details and suggestions to errors surfaced by the CLI.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the otp76 binary.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input or malformed pad file
	ExitAuth     = 3 // Pad file could not be decrypted
	ExitNotFound = 4 // Pad or pad file not found
)

// OTPError is the structured error type for otp76.
type OTPError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *OTPError) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil && e.Cause.Error() != msg {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *OTPError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for OTPError. Two OTPErrors match when their codes match.
func (e *OTPError) Is(target error) bool {
	var t *OTPError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &OTPError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &OTPError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrAuthentication = &OTPError{
		Code:     "AUTHENTICATION_FAILED",
		Message:  "authentication failed",
		ExitCode: ExitAuth,
	}

	ErrNotFound = &OTPError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Pad errors.
	ErrPadNotFound = &OTPError{
		Code:     "PAD_NOT_FOUND",
		Message:  "pad not found",
		ExitCode: ExitNotFound,
	}

	ErrEmptyKeys = &OTPError{
		Code:     "EMPTY_KEYS",
		Message:  "pad has no keys",
		ExitCode: ExitGeneral,
	}

	ErrEntropyUnavailable = &OTPError{
		Code:     "ENTROPY_UNAVAILABLE",
		Message:  "secure random source unavailable",
		ExitCode: ExitGeneral,
	}

	// Storage errors.
	ErrStoreNotFound = &OTPError{
		Code:     "STORE_NOT_FOUND",
		Message:  "pad file not found",
		ExitCode: ExitNotFound,
	}

	ErrSerialization = &OTPError{
		Code:     "SERIALIZATION_ERROR",
		Message:  "pad file is malformed",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &OTPError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong password or corrupted file",
		ExitCode: ExitAuth,
	}

	// Config errors.
	ErrConfigInvalid = &OTPError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new OTPError with the given code and message.
func New(code, message string) *OTPError {
	return &OTPError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Classify tags cause with the code and exit code of sentinel while keeping
// the cause's own message as the user-facing one.
func Classify(sentinel *OTPError, cause error) error {
	if cause == nil {
		return nil
	}
	return &OTPError{
		Code:     sentinel.Code,
		Message:  cause.Error(),
		Cause:    cause,
		ExitCode: sentinel.ExitCode,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var oe *OTPError
	if errors.As(err, &oe) {
		return &OTPError{
			Code:       oe.Code,
			Message:    fmt.Sprintf("%s: %s", msg, oe.Message),
			Details:    oe.Details,
			Suggestion: oe.Suggestion,
			Cause:      err,
			ExitCode:   oe.ExitCode,
		}
	}

	return &OTPError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var oe *OTPError
	if errors.As(err, &oe) {
		return &OTPError{
			Code:       oe.Code,
			Message:    oe.Message,
			Details:    details,
			Suggestion: oe.Suggestion,
			Cause:      oe.Cause,
			ExitCode:   oe.ExitCode,
		}
	}

	return &OTPError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var oe *OTPError
	if errors.As(err, &oe) {
		return &OTPError{
			Code:       oe.Code,
			Message:    oe.Message,
			Details:    oe.Details,
			Suggestion: suggestion,
			Cause:      oe.Cause,
			ExitCode:   oe.ExitCode,
		}
	}

	return &OTPError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var oe *OTPError
	if errors.As(err, &oe) {
		return oe.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var oe *OTPError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
