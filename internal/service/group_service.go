package service

import (
	"context"
	"fmt"
	"log/slog"

	"tabshare/internal/models"
	"tabshare/internal/storage"
)

// MaxParticipants is the upper bound on participant rows per group,
// enforced before the creation transaction starts.
const MaxParticipants = 6

// GroupService creates expense groups and serves their denormalized views.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// ParticipantInput is one participant entry in a group creation request.
type ParticipantInput struct {
	UserID     int64 `json:"user_id"`
	AmountOwed int64 `json:"amount_owed"`
}

// CreateGroupInput is the validated-on-entry group creation request.
type CreateGroupInput struct {
	Name         string
	Description  *string
	Category     string
	TotalAmount  int64
	Participants []ParticipantInput
}

// CreateGroup validates the input and persists the group with its
// participant rows in a single transaction.
//
// The sum of amount_owed entries is not required to equal the total: splits
// can be partial or uneven.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.ExpenseGroup, error) {
	if in.Name == "" {
		return nil, missingField("name")
	}
	if in.Category == "" {
		return nil, missingField("category")
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, invalidField("category", err.Error())
	}
	if in.TotalAmount <= 0 {
		return nil, invalidField("total_amount", "total_amount must be positive")
	}
	if len(in.Participants) == 0 {
		return nil, missingField("participants")
	}
	if len(in.Participants) > MaxParticipants {
		return nil, invalidField("participants", fmt.Sprintf("Maximum %d participants allowed", MaxParticipants))
	}
	seen := make(map[int64]bool, len(in.Participants))
	for _, p := range in.Participants {
		if p.AmountOwed <= 0 {
			return nil, invalidField("participants", "each amount_owed must be positive")
		}
		if seen[p.UserID] {
			return nil, invalidField("participants", fmt.Sprintf("duplicate participant user_id %d", p.UserID))
		}
		seen[p.UserID] = true
	}

	group := &models.ExpenseGroup{
		Name:        in.Name,
		Description: in.Description,
		Category:    category,
		TotalAmount: in.TotalAmount,
	}
	participants := make([]models.Participant, len(in.Participants))
	for i, p := range in.Participants {
		participants[i] = models.Participant{UserID: p.UserID, AmountOwed: p.AmountOwed}
	}

	if err := s.store.CreateExpenseGroup(ctx, group, participants); err != nil {
		slog.Error("CreateGroup failed", "name", in.Name, "error", err)
		return nil, err
	}

	slog.Info("Expense group created",
		"group_id", group.ID,
		"category", group.Category,
		"total_amount", group.TotalAmount,
		"participants_count", len(participants),
	)
	return group, nil
}

// ListGroups returns all expense groups, newest first.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.ExpenseGroup, error) {
	groups, err := s.store.ListExpenseGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, err
	}
	return groups, nil
}

// GetGroupDetails returns a group with its participants in join order and
// payments newest-first. Returns storage.ErrNotFound for an unknown ID.
func (s *GroupService) GetGroupDetails(ctx context.Context, id int64) (*models.GroupDetail, error) {
	detail, err := s.store.GetGroupDetail(ctx, id)
	if err != nil {
		if err != storage.ErrNotFound {
			slog.Error("GetGroupDetails failed", "group_id", id, "error", err)
		}
		return nil, err
	}
	return detail, nil
}
