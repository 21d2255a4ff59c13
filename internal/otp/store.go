package otp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/u8slvn/otp-76/internal/fileutil"
	"github.com/u8slvn/otp-76/internal/otpcrypto"
)

const (
	// storeFilePermissions is the permission mode for pad files.
	storeFilePermissions = 0o600

	// storeDirPermissions is the permission mode for the pad file directory.
	storeDirPermissions = 0o750
)

var (
	// ErrStoreNotFound indicates the pad file does not exist.
	ErrStoreNotFound = errors.New("pad file not found")

	// ErrPasswordRequired indicates the pad file is encrypted and no password was given.
	ErrPasswordRequired = errors.New("pad file is encrypted, a password is required")

	// ErrDecryptionFailed indicates decryption failed (wrong password or corrupted file).
	ErrDecryptionFailed = errors.New("decryption failed - wrong password or corrupted file")
)

// FileStore persists a pad collection to a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the pad file path.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the pad file exists.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the collection, replacing any existing file. When password
// holds a secret the file is age-encrypted.
func (s *FileStore) Save(c *Collection, password *otpcrypto.SecureBytes) error {
	text, err := c.ToText()
	if err != nil {
		return err
	}

	data := []byte(text)
	if password != nil && password.Len() > 0 {
		if data, err = otpcrypto.Encrypt(data, password); err != nil {
			return fmt.Errorf("encrypting pad file: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirPermissions); err != nil {
		return fmt.Errorf("creating pad directory: %w", err)
	}

	if err := fileutil.WriteAtomic(s.path, data, storeFilePermissions); err != nil {
		return fmt.Errorf("writing pad file: %w", err)
	}

	return nil
}

// Load reads the collection. Encrypted files need a password.
func (s *FileStore) Load(password *otpcrypto.SecureBytes) (*Collection, error) {
	// #nosec G304 -- pad file path comes from config or an explicit flag
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, fmt.Errorf("reading pad file: %w", err)
	}

	if otpcrypto.IsEncrypted(data) {
		if password == nil || password.Len() == 0 {
			return nil, ErrPasswordRequired
		}
		if data, err = otpcrypto.Decrypt(data, password); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
		}
	}

	return FromText(string(data))
}

// IsEncrypted reports whether the existing pad file is encrypted.
func (s *FileStore) IsEncrypted() (bool, error) {
	// #nosec G304 -- pad file path comes from config or an explicit flag
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return false, fmt.Errorf("reading pad file: %w", err)
	}
	return otpcrypto.IsEncrypted(data), nil
}
