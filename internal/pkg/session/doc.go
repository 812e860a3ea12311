// Package session packs a session (id, secret) pair into one opaque
// transport token, e.g. for a cookie value.
//
// The encoding is reversible and carries no confidentiality or integrity
// guarantee; a presented secret only becomes trusted after its digest matches
// a stored credential record.
package session
