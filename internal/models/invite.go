package models

import "time"

// Invite is a single-use code granting one join into an expense group.
//
// An invite starts open and reaches exactly one of two terminal states:
// used (UsedBy set) or expired (ExpiresAt passed while still unused).
// A used invite can never also read as expired: UsedBy being set is
// authoritative, so status checks evaluate "used" first.
type Invite struct {
	ID             int64  `json:"id"`
	ExpenseGroupID int64  `json:"expense_group_id"`
	InviteCode     string `json:"invite_code"`
	CreatedBy      int64  `json:"created_by"`
	CreatedAt      int64  `json:"created_at"`

	// ExpiresAt is the Unix timestamp after which an unused invite is
	// dead; nil means the invite never expires.
	ExpiresAt *int64 `json:"expires_at"`

	// UsedBy and UsedAt are set together when the invite is redeemed.
	UsedBy *int64 `json:"used_by"`
	UsedAt *int64 `json:"used_at"`
}

// Used reports whether the invite has been redeemed.
func (i *Invite) Used() bool {
	return i.UsedBy != nil
}

// Expired reports whether the invite's deadline has passed as of now.
// A used invite is never considered expired.
func (i *Invite) Expired(now time.Time) bool {
	if i.Used() {
		return false
	}
	return i.ExpiresAt != nil && now.Unix() > *i.ExpiresAt
}

// InviteView is an invite joined with its group and creator, as returned
// when resolving a code. Used and Expired are computed fresh per request,
// never stored.
type InviteView struct {
	Invite
	ExpenseGroupName     string   `json:"expense_group_name"`
	ExpenseGroupCategory Category `json:"expense_group_category"`
	CreatedByName        string   `json:"created_by_name"`
}

// ActiveInvite is an invite row joined with its creator's name, as listed
// in a group's invite-management view.
type ActiveInvite struct {
	Invite
	CreatedByName string `json:"created_by_name"`
}
