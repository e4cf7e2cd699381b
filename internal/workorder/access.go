package workorder

import "github.com/fieldstone/work-order-backend/internal/user"

// CanAccess reports whether the actor may read or update an order owned by
// ownerID. Managers bypass the ownership check entirely.
func CanAccess(actor user.Actor, ownerID int) bool {
	if actor.Role == user.RoleUser && actor.ID != ownerID {
		return false
	}
	return true
}

// MaskUpdate reduces a validated update payload to the column mutations the
// actor's role is allowed to make. A role that is neither USER nor MANAGER
// gets an empty set, which turns the update into a no-op rather than an error.
// Empty strings count as absent, so a field cannot be cleared this way.
func MaskUpdate(actor user.Actor, in UpdateOrderInput) map[string]any {
	set := map[string]any{}

	switch actor.Role {
	case user.RoleUser:
		carry(set, "title", in.Title)
		carry(set, "description", in.Description)
		carry(set, "priority", in.Priority)
	case user.RoleManager:
		carry(set, "title", in.Title)
		carry(set, "description", in.Description)
		carry(set, "priority", in.Priority)
		carry(set, "status", in.Status)
		if in.AssignedToID != nil {
			set["assigned_to"] = *in.AssignedToID
		}
	}

	return set
}

func carry(set map[string]any, column, value string) {
	if value != "" {
		set[column] = value
	}
}
