package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnsupportedAlgo is returned by New for an algorithm outside the Algo enum.
//
// This is a configuration or programming defect, never an attack symptom, so
// it is loud and specific while verification failures stay uniform.
var ErrUnsupportedAlgo = errors.New("hash: unsupported algorithm")

// Hash hashes plaintext secrets and verifies plaintexts against stored hashes.
type Hash interface {
	// Hash takes a plaintext string and returns its hashed representation.
	Hash(plaintext string) ([]byte, error)
	// Verify returns true when plaintext matches the hashed value.
	//
	// Malformed stored hashes fail verification; they never panic, because the
	// stored value may be attacker-supplied.
	Verify(hashed, plaintext string) bool
}

// Algo identifies a supported hashing algorithm.
//
// The set is closed on purpose: password hashing is security sensitive and an
// unknown name must fail, not fall back.
type Algo string

const (
	// AlgoMD5 is a legacy import format. Hex MD5 digest.
	AlgoMD5 Algo = "md5"
	// AlgoSHA is a hex SHA3-512 digest.
	AlgoSHA Algo = "sha"
	// AlgoBcrypt is bcrypt with the cost and salt embedded in the hash.
	AlgoBcrypt Algo = "bcrypt"
	// AlgoPHPass is the portable phpass format ($P$/$H$) used by WordPress
	// and phpBB exports.
	AlgoPHPass Algo = "phpass"
	// AlgoArgon2 is argon2id with parameters embedded in the encoded hash.
	AlgoArgon2 Algo = "argon2"
	// AlgoScrypt is raw scrypt with caller-supplied salt and costs.
	AlgoScrypt Algo = "scrypt"
	// AlgoScryptModified is the Firebase password export construction.
	AlgoScryptModified Algo = "scryptMod"
)

// ParseAlgo maps a stored algorithm name onto the Algo enum.
func ParseAlgo(name string) (Algo, error) {
	switch a := Algo(name); a {
	case AlgoMD5, AlgoSHA, AlgoBcrypt, AlgoPHPass, AlgoArgon2, AlgoScrypt, AlgoScryptModified:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgo, name)
	}
}

// Options carries per-algorithm parameters for New.
//
// Only the fields for the selected algorithm are read. Scrypt and
// ScryptModified are required for their algorithms; everything else has a
// sane zero value.
type Options struct {
	// BcryptCost is the bcrypt work factor; 0 means bcrypt.DefaultCost.
	BcryptCost int
	// Pepper is appended to the plaintext for bcrypt and argon2.
	Pepper string
	// Scrypt holds the explicit scrypt parameters.
	Scrypt ScryptOptions
	// ScryptModified holds the Firebase-export parameters.
	ScryptModified ScryptModifiedOptions
}

// New returns the Hash implementation for algo, or ErrUnsupportedAlgo.
func New(algo Algo, opts Options) (Hash, error) {
	switch algo {
	case AlgoMD5:
		return &MD5{}, nil
	case AlgoSHA:
		return &SHA3{}, nil
	case AlgoBcrypt:
		cost := opts.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		return NewBcrypt(cost, opts.Pepper), nil
	case AlgoPHPass:
		return NewPHPass(), nil
	case AlgoArgon2:
		return NewArgon2id(opts.Pepper), nil
	case AlgoScrypt:
		return NewScrypt(opts.Scrypt), nil
	case AlgoScryptModified:
		return NewScryptModified(opts.ScryptModified), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgo, string(algo))
	}
}
