package api

import (
	"errors"
	"net/http"

	"tabshare/internal/calculator"
	"tabshare/internal/models"
	"tabshare/internal/service"
	"tabshare/internal/storage"
)

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		serviceError(w, err, "Failed to fetch expense groups")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(groups))
}

type createGroupRequest struct {
	Name         string                     `json:"name"`
	Description  *string                    `json:"description"`
	Category     string                     `json:"category"`
	TotalAmount  int64                      `json:"total_amount"`
	Participants []service.ParticipantInput `json:"participants"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), service.CreateGroupInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		TotalAmount:  req.TotalAmount,
		Participants: req.Participants,
	})
	if err != nil {
		serviceError(w, err, "Failed to create expense group")
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// groupDetailResponse is the group view plus its derived repayment
// progress, recomputed from current rows on every request.
type groupDetailResponse struct {
	*models.GroupDetail
	Progress calculator.Progress `json:"progress"`
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Invalid ID format")
	if !ok {
		return
	}

	detail, err := s.groups.GetGroupDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Expense group not found")
			return
		}
		serviceError(w, err, "Failed to fetch expense group")
		return
	}
	if detail.Participants == nil {
		detail.Participants = []models.ParticipantDetail{}
	}
	if detail.Payments == nil {
		detail.Payments = []models.PaymentDetail{}
	}

	writeJSON(w, http.StatusOK, groupDetailResponse{
		GroupDetail: detail,
		Progress:    calculator.GroupProgress(detail),
	})
}
