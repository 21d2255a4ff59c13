package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/u8slvn/otp-76/internal/config"
	"github.com/u8slvn/otp-76/internal/otp"
	"github.com/u8slvn/otp-76/internal/otpcrypto"
	"github.com/u8slvn/otp-76/internal/parse"
	otperr "github.com/u8slvn/otp-76/pkg/errors"
)

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}

// classifyError maps package errors onto the CLI error taxonomy so that each
// failure carries a stable code and exit code. Errors that are already
// classified pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var oe *otperr.OTPError
	if errors.As(err, &oe) {
		return err
	}

	var ve *parse.ValidationError
	switch {
	case errors.As(err, &ve):
		// The validation message is shown verbatim.
		return otperr.Classify(otperr.ErrInvalidInput, ve)
	// A malformed file can wrap ErrEmptyKeys too; it is still a file error.
	case errors.Is(err, otp.ErrSerialization):
		return otperr.Classify(otperr.ErrSerialization, err)
	case errors.Is(err, otpcrypto.ErrEntropyUnavailable):
		return otperr.Classify(otperr.ErrEntropyUnavailable, err)
	case errors.Is(err, otp.ErrEmptyKeys):
		return otperr.Classify(otperr.ErrEmptyKeys, err)
	case errors.Is(err, otp.ErrStoreNotFound):
		return otperr.WithSuggestion(
			otperr.Classify(otperr.ErrStoreNotFound, err),
			"create pads first with: otp76 create-pads",
		)
	case errors.Is(err, otp.ErrPasswordRequired):
		return otperr.WithSuggestion(
			otperr.Classify(otperr.ErrAuthentication, err),
			"run from a terminal or set "+config.EnvPassword,
		)
	case errors.Is(err, otp.ErrDecryptionFailed):
		return otperr.Classify(otperr.ErrDecryptionFailed, err)
	default:
		return otperr.Classify(otperr.ErrGeneral, err)
	}
}
