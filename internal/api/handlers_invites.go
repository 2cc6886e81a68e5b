package api

import (
	"errors"
	"net/http"

	"tabshare/internal/storage"
)

type createInviteRequest struct {
	CreatedBy      int64 `json:"created_by"`
	ExpiresInHours *int  `json:"expires_in_hours"`
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id", "Invalid expense group ID")
	if !ok {
		return
	}
	var req createInviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	invite, err := s.invites.CreateInvite(r.Context(), groupID, req.CreatedBy, req.ExpiresInHours)
	if err != nil {
		serviceError(w, err, "Failed to create invite")
		return
	}
	writeJSON(w, http.StatusCreated, invite)
}

func (s *Server) handleListActiveInvites(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id", "Invalid expense group ID")
	if !ok {
		return
	}

	invites, err := s.invites.ListActiveInvites(r.Context(), groupID)
	if err != nil {
		serviceError(w, err, "Failed to fetch invites")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(invites))
}

func (s *Server) handleResolveInvite(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	resolved, err := s.invites.ResolveInvite(r.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrInviteNotFound) {
			writeError(w, http.StatusNotFound, "Invite not found")
			return
		}
		serviceError(w, err, "Failed to fetch invite")
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

type redeemInviteRequest struct {
	UserID     int64  `json:"user_id"`
	AmountOwed *int64 `json:"amount_owed"`
}

type redeemInviteResponse struct {
	Success        bool  `json:"success"`
	ExpenseGroupID int64 `json:"expense_group_id"`
}

func (s *Server) handleRedeemInvite(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	var req redeemInviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	groupID, err := s.invites.RedeemInvite(r.Context(), code, req.UserID, req.AmountOwed)
	if err != nil {
		// Redemption rejections carry their human-readable reason back
		// to the caller as a 400.
		switch {
		case errors.Is(err, storage.ErrInviteNotFound),
			errors.Is(err, storage.ErrInviteExpired),
			errors.Is(err, storage.ErrInviteUsed),
			errors.Is(err, storage.ErrAlreadyParticipant):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			serviceError(w, err, "Failed to join expense group")
		}
		return
	}
	writeJSON(w, http.StatusOK, redeemInviteResponse{Success: true, ExpenseGroupID: groupID})
}
