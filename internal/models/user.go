package models

// User represents a person who can join expense groups and record payments.
//
// There is no account or login model: any caller may act as any user ID.
// Users are referenced by participants, payments, payment methods, and
// invites, and are never deleted.
type User struct {
	// ID is the auto-assigned numeric identifier.
	ID int64 `json:"id"`

	// Name is the display name. Must be non-empty.
	Name string `json:"name"`

	// Email is optional contact info; nil when not provided.
	Email *string `json:"email"`

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64 `json:"created_at"`
}
