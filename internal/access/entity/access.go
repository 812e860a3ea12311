package entity

import (
	"time"

	"github.com/shandysiswandi/gotrust/internal/pkg/hash"
	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
)

type User struct {
	ID             string
	Email          string
	Phone          string
	EmailVerified  bool
	PhoneVerified  bool
	Status         UserStatus
	PasswordDigest string
	// PasswordAlgo and PasswordOptions describe how PasswordDigest was
	// produced, so imported accounts keep verifying against their original
	// scheme until the user next changes their password.
	PasswordAlgo    hash.Algo
	PasswordOptions valueobject.JSONMap
	Memberships     []Membership
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Team struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

type Membership struct {
	ID        string
	TeamID    string
	UserID    string
	Confirmed bool
	Roles     []string // team-scoped labels, e.g. "administrator"
	CreatedAt time.Time
}

type Session struct {
	ID           string
	UserID       string
	Provider     SessionProvider
	SecretDigest string
	UserAgent    string
	IP           string
	CreatedAt    time.Time
}

type Token struct {
	ID           string
	UserID       string
	Type         TokenType
	SecretDigest string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// APIKey identifies a machine caller. Only the HMAC digest of the key
// material is stored.
type APIKey struct {
	ID        string
	Name      string
	Digest    string
	Disabled  bool
	CreatedAt time.Time
}

// ---- //

type NewUser struct {
	ID             string
	Email          string
	Phone          string
	Status         UserStatus
	PasswordDigest string
	PasswordAlgo   hash.Algo
}

type NewMembership struct {
	ID     string
	TeamID string
	UserID string
	Roles  []string
}
