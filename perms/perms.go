// Permission checks for mutating operations on the list.
package perms

// RoleLevel is an ordered permission tier. Comparisons such as
// `role >= RoleAdmin` rely on the declaration order here, so new tiers must
// be inserted in rank order.
type RoleLevel int

const (
	RoleMember RoleLevel = iota
	RoleAdmin
	RoleOwner // list owner, not to be confused with a bot's owner
)

func (r RoleLevel) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	}

	return "member"
}

// ParseRole maps a role column value to its tier. Unknown values degrade to
// member rather than erroring, matching how bans are handled elsewhere.
func ParseRole(s string) RoleLevel {
	switch s {
	case "admin":
		return RoleAdmin
	case "owner":
		return RoleOwner
	}

	return RoleMember
}

// CanMutate returns whether an actor may edit or delete a bot. Admins and
// above may mutate any bot, everyone else only their own.
func CanMutate(role RoleLevel, botOwnerID, actorID string) bool {
	return role >= RoleAdmin || actorID == botOwnerID
}

// CanResetAll returns whether an actor may reset every bots votes
func CanResetAll(role RoleLevel) bool {
	return role == RoleOwner
}
