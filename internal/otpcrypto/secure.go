package otpcrypto

import (
	"runtime"
	"sync"
)

// SecureBytes holds a secret (a pad file password) in memory that is
// locked when the platform allows it and zeroed on Destroy.
type SecureBytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureBytes allocates size bytes of secure memory.
// Locking is best effort; an unlocked buffer is still zeroed on Destroy.
func NewSecureBytes(size int) *SecureBytes {
	sb := &SecureBytes{data: make([]byte, size)}
	sb.locked = mlock(sb.data)

	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Destroy()
	})

	return sb
}

// SecureBytesFromSlice copies data into secure memory and zeroes the source slice.
func SecureBytesFromSlice(data []byte) *SecureBytes {
	sb := NewSecureBytes(len(data))
	copy(sb.data, data)
	for i := range data {
		data[i] = 0
	}
	return sb
}

// Bytes returns the underlying slice, or nil once destroyed.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// String returns a copy of the secret as a string, for APIs that only take strings.
func (s *SecureBytes) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data)
}

// IsLocked reports whether the memory is mlocked.
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Len returns the length of the secret, 0 once destroyed or when s is nil.
func (s *SecureBytes) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeroes and unlocks the memory. Safe to call multiple times and
// on a nil receiver.
func (s *SecureBytes) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	for i := range s.data {
		s.data[i] = 0
	}

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	s.data = nil
	runtime.SetFinalizer(s, nil)
}
