package hash

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/scrypt"
)

// ScryptOptions are the explicit scrypt parameters.
//
// None of them are embedded in the produced hash; verification with different
// options than hashing fails, and that asymmetry is intentional.
type ScryptOptions struct {
	// Salt is the raw salt string.
	Salt string
	// Length is the derived key length in bytes.
	Length int
	// CostCPU is the scrypt N parameter (power of two).
	CostCPU int
	// CostMemory is the scrypt r parameter.
	CostMemory int
	// CostParallel is the scrypt p parameter.
	CostParallel int
}

// Scrypt implements Hash using raw scrypt with caller-supplied options.
type Scrypt struct {
	opts ScryptOptions
}

// NewScrypt returns a scrypt hasher bound to opts.
func NewScrypt(opts ScryptOptions) *Scrypt {
	return &Scrypt{opts: opts}
}

// Hash derives the key and returns it hex encoded.
func (s *Scrypt) Hash(plaintext string) ([]byte, error) {
	key, err := scrypt.Key(
		[]byte(plaintext),
		[]byte(s.opts.Salt),
		s.opts.CostCPU,
		s.opts.CostMemory,
		s.opts.CostParallel,
		s.opts.Length,
	)
	if err != nil {
		return nil, err
	}

	out := make([]byte, hex.EncodedLen(len(key)))
	hex.Encode(out, key)
	return out, nil
}

// Verify recomputes with the bound options and compares.
func (s *Scrypt) Verify(hashed, plaintext string) bool {
	computed, err := s.Hash(plaintext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hashed), computed) == 1
}
