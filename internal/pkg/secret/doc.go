// Package secret generates and digests the random secrets behind sessions,
// tokens and one-time codes.
//
// The digest here is separate from password hashing on purpose: generated
// secrets are high entropy, so a fixed unsalted hash is enough to keep
// plaintexts out of storage while staying cheap to compute on every lookup.
package secret
