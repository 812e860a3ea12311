package hash

import (
	"crypto/md5" //nolint:gosec // the phpass wire format is md5 based
	"crypto/rand"
	"crypto/subtle"
	"strings"
)

const phpassItoa64 = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// PHPass implements the portable phpass hash format ($P$ / $H$).
//
// The iteration count is embedded in the fourth character of the stored
// value, so Verify re-derives with whatever parameters the record carries.
type PHPass struct{}

// NewPHPass returns a phpass hasher.
func NewPHPass() *PHPass {
	return &PHPass{}
}

// Hash produces a portable hash with 2^13 iterations and a random salt.
func (p *PHPass) Hash(plaintext string) ([]byte, error) {
	var seed [6]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}

	setting := "$P$" + string(phpassItoa64[13]) + phpassEncode64(seed[:], 6)
	out, ok := phpassCrypt(plaintext, setting)
	if !ok {
		return nil, ErrUnsupportedAlgo
	}

	return []byte(out), nil
}

// Verify re-derives using the parameters embedded in hashed and compares.
func (p *PHPass) Verify(hashed, plaintext string) bool {
	computed, ok := phpassCrypt(plaintext, hashed)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hashed), []byte(computed)) == 1
}

func phpassCrypt(plaintext, setting string) (string, bool) {
	if len(setting) < 12 {
		return "", false
	}
	if setting[0] != '$' || (setting[1] != 'P' && setting[1] != 'H') || setting[2] != '$' {
		return "", false
	}

	countLog2 := strings.IndexByte(phpassItoa64, setting[3])
	if countLog2 < 7 || countLog2 > 30 {
		return "", false
	}

	salt := setting[4:12]
	sum := md5.Sum([]byte(salt + plaintext)) //nolint:gosec // wire format
	for count := 1 << uint(countLog2); count > 0; count-- {
		sum = md5.Sum(append(sum[:], plaintext...)) //nolint:gosec // wire format
	}

	return setting[:12] + phpassEncode64(sum[:], 16), true
}

// phpassEncode64 is phpass's custom base64; it is not interchangeable with
// encoding/base64.
func phpassEncode64(input []byte, count int) string {
	var out strings.Builder

	i := 0
	for i < count {
		value := int(input[i])
		i++
		out.WriteByte(phpassItoa64[value&0x3f])

		if i < count {
			value |= int(input[i]) << 8
		}
		out.WriteByte(phpassItoa64[(value>>6)&0x3f])
		if i >= count {
			break
		}
		i++

		if i < count {
			value |= int(input[i]) << 16
		}
		out.WriteByte(phpassItoa64[(value>>12)&0x3f])
		if i >= count {
			break
		}
		i++

		out.WriteByte(phpassItoa64[(value>>18)&0x3f])
	}

	return out.String()
}
