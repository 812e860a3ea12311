// Package principal carries the resolved caller identity of a request.
//
// Resolution itself lives in the access module; this package only defines the
// value, the resolver contract and the context plumbing so that transport
// middleware does not depend on domain packages.
package principal

import (
	"context"
	"sync"
)

// Principal is the caller identity attached to a request context. The zero
// value is an anonymous caller; role derivation turns it into a guest.
type Principal struct {
	// UserID is empty for anonymous and machine callers.
	UserID    string
	SessionID string
	// Roles is the full derived role set used as casbin subjects.
	Roles []string
}

// Authenticated reports whether the principal is bound to a user account.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// HasRole reports whether the principal carries the given role string.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Credentials are the raw request credentials a transport extracted, before
// any of them has been checked.
type Credentials struct {
	// SessionToken is the opaque packed session token.
	SessionToken string
	// Bearer is the JWT from the Authorization header.
	Bearer string
	// APIKey is the machine key material.
	APIKey string
	// OperatorSecret marks operator console calls.
	OperatorSecret string
	UserAgent      string
	IP             string
}

// Resolver turns raw credentials into a principal. A failed lookup is not an
// error; implementations return an anonymous principal for anything they
// cannot verify and reserve errors for infrastructure failures.
type Resolver interface {
	Resolve(ctx context.Context, creds Credentials) (Principal, error)
}

// Deferred is a Resolver that delegates to one installed later. The router is
// built before the domain modules, so it holds a Deferred and the access
// module installs the real resolver during its own wiring.
type Deferred struct {
	mu sync.RWMutex
	r  Resolver
}

func (d *Deferred) Install(r Resolver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.r = r
}

func (d *Deferred) Resolve(ctx context.Context, creds Credentials) (Principal, error) {
	d.mu.RLock()
	r := d.r
	d.mu.RUnlock()

	if r == nil {
		return Principal{}, nil
	}
	return r.Resolve(ctx, creds)
}

type principalContextKey struct{}

// Set stores the principal in the context.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// Get returns the principal stored in the context, or the zero principal.
func Get(ctx context.Context) Principal {
	p, _ := ctx.Value(principalContextKey{}).(Principal)
	return p
}
