// Package secure provides explicit zeroization of secret key material and
// constant-time comparison helpers. Every component that handles a private
// scalar wipes its intermediate buffers through this package.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
)

// Zeroize overwrites sensitive data with zeros.
func Zeroize(data []byte) {
	if len(data) == 0 {
		return
	}
	for i := range data {
		data[i] = 0
	}
	// Keep the slice reachable so the writes are not optimized away.
	runtime.KeepAlive(data)
}

// ZeroizeMultiple zeros several byte slices in a single call.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}

// Compare performs a constant-time equality check of two byte slices.
func Compare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Random fills data with cryptographically secure random bytes.
func Random(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := rand.Read(data); err != nil {
		return fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return nil
}

// Bytes wraps a secret byte slice with explicit cleanup. The zero value is
// empty and safe to Clear.
type Bytes struct {
	data      []byte
	finalized bool
}

// FromBytes copies data into a new secure buffer.
func FromBytes(data []byte) *Bytes {
	if len(data) == 0 {
		return &Bytes{}
	}
	b := &Bytes{data: make([]byte, len(data))}
	copy(b.data, data)
	runtime.SetFinalizer(b, (*Bytes).finalize)
	return b
}

// Bytes returns a copy of the secret, or nil after Clear.
func (b *Bytes) Bytes() []byte {
	if b.data == nil {
		return nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Size returns the secret length in bytes.
func (b *Bytes) Size() int { return len(b.data) }

// Clear zeros the secret and detaches the finalizer. Idempotent.
func (b *Bytes) Clear() {
	if !b.finalized && b.data != nil {
		Zeroize(b.data)
		b.data = nil
		b.finalized = true
		runtime.SetFinalizer(b, nil)
	}
}

func (b *Bytes) finalize() { b.Clear() }
