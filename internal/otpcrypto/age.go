package otpcrypto

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
)

// ageHeader is the first line of every age file.
const ageHeader = "age-encryption.org/v1\n"

// IsEncrypted reports whether data looks like an age-encrypted payload.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(ageHeader))
}

// Encrypt encrypts plaintext with a password-based (scrypt) age recipient.
func Encrypt(plaintext []byte, password *SecureBytes) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password.String())
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts an age payload produced by Encrypt.
func Decrypt(ciphertext []byte, password *SecureBytes) ([]byte, error) {
	identity, err := age.NewScryptIdentity(password.String())
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("initializing decryption: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return plaintext, nil
}
