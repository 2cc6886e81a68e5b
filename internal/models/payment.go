package models

import (
	"fmt"
	"regexp"
)

// Payment represents a recorded contribution by a user toward a group's
// total. The payer does not have to be a participant of the group.
type Payment struct {
	ID             int64 `json:"id"`
	ExpenseGroupID int64 `json:"expense_group_id"`
	UserID         int64 `json:"user_id"`

	// Amount is the paid amount in cents; always positive.
	Amount int64 `json:"amount"`

	// PaymentDate is the Unix timestamp of the payment; defaults to the
	// time the payment was recorded.
	PaymentDate int64 `json:"payment_date"`

	// PaymentMethodID optionally tags the payment with a saved method.
	PaymentMethodID *int64 `json:"payment_method_id"`
}

// PaymentMethodType is the kind of saved payment method.
type PaymentMethodType string

const (
	PaymentMethodBankAccount PaymentMethodType = "bank_account"
	PaymentMethodDebitCard   PaymentMethodType = "debit_card"
)

// ParsePaymentMethodType validates a raw payment method type string.
func ParsePaymentMethodType(s string) (PaymentMethodType, error) {
	switch PaymentMethodType(s) {
	case PaymentMethodBankAccount, PaymentMethodDebitCard:
		return PaymentMethodType(s), nil
	}
	return "", fmt.Errorf("unknown payment method type: %q", s)
}

var lastFourRe = regexp.MustCompile(`^\d{4}$`)

// ValidLastFour reports whether s is exactly four digits.
func ValidLastFour(s string) bool {
	return lastFourRe.MatchString(s)
}

// PaymentMethod is a saved bank account or debit card belonging to a user.
//
// IsDefault is a soft preference: flagging a second method as default does
// not clear the first, so a user can transiently hold several defaults.
type PaymentMethod struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Type      PaymentMethodType `json:"type"`
	LastFour  string            `json:"last_four"`
	Provider  string            `json:"provider"`
	IsDefault bool              `json:"is_default"`
	CreatedAt int64             `json:"created_at"`
}
