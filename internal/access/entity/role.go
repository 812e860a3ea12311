package entity

import (
	"github.com/samber/lo"
)

// Role vocabulary consumed by the permission engine. Derived role strings are
// casbin subjects; nothing outside this file invents new shapes.
const (
	RoleGuests = "guests"
	RoleUsers  = "users"

	// Operator tags carried in the ambient request context.
	RoleAdmin     = "admin"
	RoleDeveloper = "developer"
	RoleOwner     = "owner"

	// Machine tags carried in the ambient request context.
	RoleApps   = "apps"
	RoleSystem = "system"

	dimensionVerified   = "verified"
	dimensionUnverified = "unverified"
)

func RoleUser(id string) string { return "user:" + id }

func RoleTeam(teamID string) string { return "team:" + teamID }

func RoleTeamLabel(teamID, label string) string { return "team:" + teamID + "/" + label }

func RoleMember(membershipID string) string { return "member:" + membershipID }

// IsPrivileged reports whether the ambient roles mark an operator console
// caller.
func IsPrivileged(ambient []string) bool {
	return lo.Some(ambient, []string{RoleAdmin, RoleDeveloper, RoleOwner})
}

// IsMachine reports whether the ambient roles mark a server-side API key or
// internal caller.
func IsMachine(ambient []string) bool {
	return lo.Some(ambient, []string{RoleApps, RoleSystem})
}

// DeriveRoles expands a user and the ambient request roles into the full role
// set for permission checks.
//
// An empty user ID yields exactly [guests]. Privileged and machine callers
// act on behalf of users, so they receive only the membership-derived roles;
// ordinary callers additionally get their own identity roles and the
// verified/unverified dimension (verified when email or phone is confirmed).
// Unconfirmed memberships contribute nothing.
func DeriveRoles(user User, ambient []string) []string {
	if user.ID == "" {
		return []string{RoleGuests}
	}

	roles := make([]string, 0, 4+3*len(user.Memberships))

	if !IsPrivileged(ambient) && !IsMachine(ambient) {
		dim := dimensionUnverified
		if user.EmailVerified || user.PhoneVerified {
			dim = dimensionVerified
		}

		roles = append(roles,
			RoleUser(user.ID),
			RoleUsers,
			RoleUsers+"/"+dim,
			RoleUser(user.ID)+"/"+dim,
		)
	}

	for _, m := range user.Memberships {
		if !m.Confirmed {
			continue
		}

		roles = append(roles, RoleTeam(m.TeamID), RoleMember(m.ID))
		for _, label := range m.Roles {
			roles = append(roles, RoleTeamLabel(m.TeamID, label))
		}
	}

	return lo.Uniq(roles)
}
