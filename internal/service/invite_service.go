package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tabshare/internal/models"
	"tabshare/internal/storage"
)

// inviteCodeBytes is the entropy of a generated invite code; the code is
// its hex encoding, 12 characters, usable as a URL path segment.
// Collisions are not prevented up front: the store's unique constraint
// turns the negligible-probability clash into a creation failure.
const inviteCodeBytes = 6

// InviteService issues, resolves, and redeems single-use invite codes.
type InviteService struct {
	store storage.Store
}

// NewInviteService creates a new InviteService with the given storage backend.
func NewInviteService(store storage.Store) *InviteService {
	return &InviteService{store: store}
}

// generateInviteCode produces a cryptographically random invite code.
func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateInvite issues a new invite code for a group. A nil expiresInHours
// means the invite never expires.
func (s *InviteService) CreateInvite(ctx context.Context, groupID, createdBy int64, expiresInHours *int) (*models.Invite, error) {
	if createdBy == 0 {
		return nil, missingField("created_by")
	}
	if _, err := s.store.GetExpenseGroup(ctx, groupID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invalidField("expense_group_id", "expense group not found")
		}
		slog.Error("CreateInvite group lookup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	invite := &models.Invite{
		ExpenseGroupID: groupID,
		InviteCode:     code,
		CreatedBy:      createdBy,
	}
	if expiresInHours != nil {
		expiresAt := time.Now().Add(time.Duration(*expiresInHours) * time.Hour).Unix()
		invite.ExpiresAt = &expiresAt
	}

	if err := s.store.CreateInvite(ctx, invite); err != nil {
		slog.Error("CreateInvite failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Invite created",
		"invite_id", invite.ID,
		"group_id", invite.ExpenseGroupID,
		"created_by", invite.CreatedBy,
		"expires_at", invite.ExpiresAt,
	)
	return invite, nil
}

// ResolvedInvite is an invite view with its freshly computed status flags.
type ResolvedInvite struct {
	models.InviteView
	Expired bool `json:"expired"`
	Used    bool `json:"used"`
}

// ResolveInvite looks up a code and classifies its current status.
// "Used" wins over "expired": a redeemed invite never reads as expired,
// no matter how old it is. Returns storage.ErrInviteNotFound for an
// unknown code.
func (s *InviteService) ResolveInvite(ctx context.Context, code string) (*ResolvedInvite, error) {
	view, err := s.store.GetInviteByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, storage.ErrInviteNotFound) {
			slog.Error("ResolveInvite failed", "error", err)
		}
		return nil, err
	}

	resolved := &ResolvedInvite{InviteView: *view}
	if view.Used() {
		resolved.Used = true
	} else if view.Expired(time.Now()) {
		resolved.Expired = true
	}
	return resolved, nil
}

// RedeemInvite consumes an invite code, adding the user to the group with
// the given owed amount (zero when nil). The whole redemption is one
// atomic store transaction; under concurrent attempts on the same code
// exactly one caller wins and the rest get storage.ErrInviteUsed.
// Returns the joined group's ID.
func (s *InviteService) RedeemInvite(ctx context.Context, code string, userID int64, amountOwed *int64) (int64, error) {
	if userID == 0 {
		return 0, missingField("user_id")
	}
	var owed int64
	if amountOwed != nil {
		if *amountOwed < 0 {
			return 0, invalidField("amount_owed", "amount_owed must not be negative")
		}
		owed = *amountOwed
	}

	groupID, err := s.store.RedeemInvite(ctx, code, userID, owed)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInviteNotFound),
			errors.Is(err, storage.ErrInviteExpired),
			errors.Is(err, storage.ErrInviteUsed),
			errors.Is(err, storage.ErrAlreadyParticipant):
			slog.Warn("RedeemInvite rejected", "user_id", userID, "reason", err)
		default:
			slog.Error("RedeemInvite failed", "user_id", userID, "error", err)
		}
		return 0, err
	}

	slog.Info("Invite redeemed", "group_id", groupID, "user_id", userID)
	return groupID, nil
}

// ListActiveInvites returns a group's invites that are still unused or
// were used within the recent-activity window, excluding expired ones.
func (s *InviteService) ListActiveInvites(ctx context.Context, groupID int64) ([]*models.ActiveInvite, error) {
	invites, err := s.store.ListActiveInvites(ctx, groupID, time.Now())
	if err != nil {
		slog.Error("ListActiveInvites failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return invites, nil
}
