package entity

import (
	"reflect"
	"sort"
	"testing"
)

func membershipsFixture() []Membership {
	return []Membership{
		{ID: "456", TeamID: "abc", UserID: "123", Confirmed: true, Roles: []string{"administrator", "moderator"}},
		{ID: "abc", TeamID: "def", UserID: "123", Confirmed: true, Roles: []string{"guest"}},
	}
}

func assertRoles(t *testing.T, got, want []string) {
	t.Helper()

	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)

	if !reflect.DeepEqual(g, w) {
		t.Fatalf("roles = %v, want %v", got, want)
	}
}

func TestDeriveRolesGuest(t *testing.T) {
	got := DeriveRoles(User{}, nil)

	assertRoles(t, got, []string{RoleGuests})
}

func TestDeriveRolesOrdinaryUser(t *testing.T) {
	user := User{ID: "123", Memberships: membershipsFixture()}

	got := DeriveRoles(user, nil)

	want := []string{
		"user:123",
		"users",
		"users/unverified",
		"user:123/unverified",
		"team:abc",
		"team:abc/administrator",
		"team:abc/moderator",
		"member:456",
		"team:def",
		"team:def/guest",
		"member:abc",
	}
	if len(got) != 11 {
		t.Fatalf("role count = %d, want 11", len(got))
	}
	assertRoles(t, got, want)
}

func TestDeriveRolesVerifiedDimension(t *testing.T) {
	tests := []struct {
		name          string
		emailVerified bool
		phoneVerified bool
		dim           string
	}{
		{"neither", false, false, "unverified"},
		{"email only", true, false, "verified"},
		{"phone only", false, true, "verified"},
		{"both", true, true, "verified"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user := User{ID: "123", EmailVerified: tc.emailVerified, PhoneVerified: tc.phoneVerified}

			got := DeriveRoles(user, nil)

			assertRoles(t, got, []string{
				"user:123",
				"users",
				"users/" + tc.dim,
				"user:123/" + tc.dim,
			})
		})
	}
}

func TestDeriveRolesPrivilegedAndMachine(t *testing.T) {
	user := User{ID: "123", EmailVerified: true, Memberships: membershipsFixture()}

	want := []string{
		"team:abc",
		"team:abc/administrator",
		"team:abc/moderator",
		"member:456",
		"team:def",
		"team:def/guest",
		"member:abc",
	}

	for _, ambient := range [][]string{
		{RoleAdmin},
		{RoleDeveloper},
		{RoleOwner},
		{RoleApps},
		{RoleSystem},
	} {
		got := DeriveRoles(user, ambient)

		if len(got) != 7 {
			t.Fatalf("ambient %v: role count = %d, want 7", ambient, len(got))
		}
		assertRoles(t, got, want)
	}
}

func TestDeriveRolesSkipsUnconfirmedMemberships(t *testing.T) {
	user := User{ID: "123", Memberships: []Membership{
		{ID: "m1", TeamID: "abc", Confirmed: false, Roles: []string{"administrator"}},
	}}

	got := DeriveRoles(user, nil)

	assertRoles(t, got, []string{"user:123", "users", "users/unverified", "user:123/unverified"})
}

func TestDeriveRolesDeduplicates(t *testing.T) {
	user := User{ID: "123", Memberships: []Membership{
		{ID: "m1", TeamID: "abc", Confirmed: true, Roles: []string{"dev", "dev"}},
	}}

	got := DeriveRoles(user, nil)

	seen := map[string]struct{}{}
	for _, r := range got {
		if _, ok := seen[r]; ok {
			t.Fatalf("duplicate role %q in %v", r, got)
		}
		seen[r] = struct{}{}
	}
}

func TestIsPrivilegedAndIsMachine(t *testing.T) {
	if IsPrivileged([]string{RoleUsers, "team:abc"}) {
		t.Fatal("ordinary roles must not be privileged")
	}
	if !IsPrivileged([]string{RoleAdmin}) || !IsPrivileged([]string{RoleDeveloper}) || !IsPrivileged([]string{RoleOwner}) {
		t.Fatal("operator tags must be privileged")
	}
	if IsMachine([]string{RoleAdmin}) {
		t.Fatal("operator tag is not a machine tag")
	}
	if !IsMachine([]string{RoleApps}) || !IsMachine([]string{RoleSystem}) {
		t.Fatal("machine tags must be machine")
	}
}
