package models

// ExpenseGroup represents a named shared cost split among participants.
//
// TotalAmount is the full cost in cents and must be positive. The sum of
// the participants' owed amounts is deliberately not required to equal
// TotalAmount; splits can be partial or uneven.
type ExpenseGroup struct {
	// ID is the auto-assigned numeric identifier.
	ID int64 `json:"id"`

	// Name is the display name of the group (e.g. "Ski trip", "Dinner").
	Name string `json:"name"`

	// Description is optional free text; nil when not provided.
	Description *string `json:"description"`

	// Category is one of the closed set of expense categories.
	Category Category `json:"category"`

	// TotalAmount is the full cost of the expense, in cents.
	TotalAmount int64 `json:"total_amount"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Participant is one user's membership in an expense group.
// A user appears at most once per group, and a group holds one to six rows.
type Participant struct {
	ExpenseGroupID int64 `json:"expense_group_id"`
	UserID         int64 `json:"user_id"`

	// AmountOwed is this participant's share in cents. Zero is allowed
	// for members who joined via invite without an assigned share.
	AmountOwed int64 `json:"amount_owed"`
}

// ParticipantDetail is a participant row joined with its user,
// as returned by the group detail query.
type ParticipantDetail struct {
	UserID     int64   `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	AmountOwed int64   `json:"amount_owed"`
}

// PaymentDetail is a payment row joined with its payer and, when tagged,
// the payment method used.
type PaymentDetail struct {
	ID          int64  `json:"id"`
	Amount      int64  `json:"amount"`
	PaymentDate int64  `json:"payment_date"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`

	PaymentMethodType *PaymentMethodType `json:"payment_method_type"`
	LastFour          *string            `json:"last_four"`
	Provider          *string            `json:"provider"`
}

// GroupDetail is the denormalized view of one expense group: the group row,
// its participants in join order, and its payments newest-first.
type GroupDetail struct {
	ExpenseGroup
	Participants []ParticipantDetail `json:"participants"`
	Payments     []PaymentDetail     `json:"payments"`
}
