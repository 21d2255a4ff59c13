package cli

import (
	"crypto/subtle"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/u8slvn/otp-76/internal/config"
	"github.com/u8slvn/otp-76/internal/otpcrypto"
	otperr "github.com/u8slvn/otp-76/pkg/errors"
)

// minPasswordLength is the shortest password accepted for a new encrypted pad file.
const minPasswordLength = 8

// promptPasswordFn reads a password. Tests replace it.
//
//nolint:gochecknoglobals // Replaceable for testing
var promptPasswordFn = promptPassword

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term
	if !term.IsTerminal(fd) {
		return nil, otperr.WithSuggestion(
			otperr.ErrAuthentication,
			fmt.Sprintf("no terminal available for the password prompt, set %s", config.EnvPassword),
		)
	}

	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(fd)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// existingPassword returns the password for an encrypted pad file, taken
// from the environment when set and prompted for otherwise.
func existingPassword() (*otpcrypto.SecureBytes, error) {
	if v, ok := os.LookupEnv(config.EnvPassword); ok && v != "" {
		return otpcrypto.SecureBytesFromSlice([]byte(v)), nil
	}

	password, err := promptPasswordFn("Enter pad file password: ")
	if err != nil {
		return nil, err
	}
	return otpcrypto.SecureBytesFromSlice(password), nil
}

// newPassword returns the password for a new encrypted pad file. Prompted
// passwords must be confirmed.
func newPassword() (*otpcrypto.SecureBytes, error) {
	if v, ok := os.LookupEnv(config.EnvPassword); ok && v != "" {
		return otpcrypto.SecureBytesFromSlice([]byte(v)), nil
	}

	password, err := promptPasswordFn("Enter encryption password: ")
	if err != nil {
		return nil, err
	}
	secret := otpcrypto.SecureBytesFromSlice(password)

	if secret.Len() < minPasswordLength {
		secret.Destroy()
		return nil, otperr.WithSuggestion(
			otperr.ErrInvalidInput,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		)
	}

	confirm, err := promptPasswordFn("Confirm password: ")
	if err != nil {
		secret.Destroy()
		return nil, err
	}
	confirmed := otpcrypto.SecureBytesFromSlice(confirm)
	defer confirmed.Destroy()

	if subtle.ConstantTimeCompare(secret.Bytes(), confirmed.Bytes()) != 1 {
		secret.Destroy()
		return nil, otperr.WithSuggestion(
			otperr.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return secret, nil
}
