// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is for password hashing: store only the hash, then verify user
// input by comparing the plaintext against the stored hash. Implementations
// live in this package behind a small interface and are selected through the
// Algo enum, so records created under different algorithms (including legacy
// imports: md5, phpass, Firebase scrypt exports) keep verifying without a
// forced rehash.
//
// Two families exist and the difference is part of the contract:
//
//   - Self-describing: bcrypt, phpass and argon2 embed their own parameters
//     (cost, iteration count, salt) in the stored value. Verify needs only the
//     plaintext and the stored hash.
//   - Caller-parameterized: scrypt and scryptMod take their salt and cost
//     options per call and do NOT embed them. Verify must be given the exact
//     options used at hash time; changing any of them fails verification.
package hash
