package perms

import "testing"

func TestRoleOrdering(t *testing.T) {
	if !(RoleMember < RoleAdmin && RoleAdmin < RoleOwner) {
		t.Fatal("role tiers must be ordered member < admin < owner")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]RoleLevel{
		"member":  RoleMember,
		"admin":   RoleAdmin,
		"owner":   RoleOwner,
		"":        RoleMember,
		"unknown": RoleMember,
	}

	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCanMutate(t *testing.T) {
	if !CanMutate(RoleMember, "owner123", "owner123") {
		t.Error("a bots owner must be able to mutate it")
	}

	if CanMutate(RoleMember, "owner123", "someone-else") {
		t.Error("a random member must not be able to mutate someone elses bot")
	}

	if !CanMutate(RoleAdmin, "owner123", "someone-else") {
		t.Error("an admin must be able to mutate any bot")
	}

	if !CanMutate(RoleOwner, "owner123", "someone-else") {
		t.Error("the list owner must be able to mutate any bot")
	}
}

func TestCanResetAll(t *testing.T) {
	if CanResetAll(RoleMember) || CanResetAll(RoleAdmin) {
		t.Error("only the list owner may reset all votes")
	}

	if !CanResetAll(RoleOwner) {
		t.Error("the list owner must be able to reset all votes")
	}
}
