// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"tabshare/internal/models"
)

// Ledger state errors. The invite errors carry the exact wording surfaced
// to callers on a failed redemption.
var (
	ErrNotFound           = errors.New("not found")
	ErrInviteNotFound     = errors.New("Invite not found")
	ErrInviteExpired      = errors.New("Invite has expired")
	ErrInviteUsed         = errors.New("Invite has already been used")
	ErrAlreadyParticipant = errors.New("User is already a participant in this expense group")
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Create methods populate the entity's ID, and its CreatedAt when it is
// zero. Multi-row writes (group creation, invite redemption) are atomic:
// either every row is visible afterwards or none is.
type Store interface {
	// CreateUser persists a new user and populates its ID.
	CreateUser(ctx context.Context, user *models.User) error

	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// CreateExpenseGroup persists the group and its participant rows in
	// one transaction. Participant order is preserved as join order.
	CreateExpenseGroup(ctx context.Context, group *models.ExpenseGroup, participants []models.Participant) error

	// ListExpenseGroups returns all groups, newest first.
	ListExpenseGroups(ctx context.Context) ([]*models.ExpenseGroup, error)

	// GetExpenseGroup retrieves a single group row by ID.
	// Returns ErrNotFound if absent.
	GetExpenseGroup(ctx context.Context, id int64) (*models.ExpenseGroup, error)

	// GetGroupDetail returns the group with its participants in join
	// order and its payments newest-first. Returns ErrNotFound if the
	// group does not exist.
	GetGroupDetail(ctx context.Context, id int64) (*models.GroupDetail, error)

	// CreatePayment persists a new payment row.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// CreatePaymentMethod persists a new payment method.
	CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error

	// ListPaymentMethods returns a user's payment methods, default first.
	ListPaymentMethods(ctx context.Context, userID int64) ([]*models.PaymentMethod, error)

	// CreateInvite persists a new invite. The invite code is unique
	// across all invites; a collision fails the insert rather than
	// overwriting.
	CreateInvite(ctx context.Context, invite *models.Invite) error

	// GetInviteByCode returns the invite joined with its group and
	// creator. Returns ErrInviteNotFound for an unknown code.
	GetInviteByCode(ctx context.Context, code string) (*models.InviteView, error)

	// ListActiveInvites returns a group's invites that are still unused,
	// or were created within 24 hours of now even if since used,
	// excluding expired ones. Newest first.
	ListActiveInvites(ctx context.Context, groupID int64, now time.Time) ([]*models.ActiveInvite, error)

	// RedeemInvite atomically consumes an invite: it re-reads the invite
	// inside the transaction, verifies it is still open, adds the user
	// as a participant with the given owed amount, and marks the invite
	// used. Exactly one of two concurrent redemptions succeeds; the
	// loser gets ErrInviteUsed. Other failures: ErrInviteNotFound,
	// ErrInviteExpired, ErrAlreadyParticipant.
	// Returns the joined group's ID on success.
	RedeemInvite(ctx context.Context, code string, userID, amountOwed int64) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
