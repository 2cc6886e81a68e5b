package api

import (
	"net/http"

	"tabshare/internal/service"
)

type addPaymentRequest struct {
	ExpenseGroupID  int64  `json:"expense_group_id"`
	UserID          int64  `json:"user_id"`
	Amount          int64  `json:"amount"`
	PaymentMethodID *int64 `json:"payment_method_id"`
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	var req addPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := s.payments.AddPayment(r.Context(), service.AddPaymentInput{
		ExpenseGroupID:  req.ExpenseGroupID,
		UserID:          req.UserID,
		Amount:          req.Amount,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		serviceError(w, err, "Failed to add payment")
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", "Invalid user ID format")
	if !ok {
		return
	}

	methods, err := s.payments.ListPaymentMethods(r.Context(), userID)
	if err != nil {
		serviceError(w, err, "Failed to fetch payment methods")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(methods))
}

type addPaymentMethodRequest struct {
	UserID    int64  `json:"user_id"`
	Type      string `json:"type"`
	LastFour  string `json:"last_four"`
	Provider  string `json:"provider"`
	IsDefault bool   `json:"is_default"`
}

func (s *Server) handleAddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req addPaymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	method, err := s.payments.AddPaymentMethod(r.Context(), service.AddPaymentMethodInput{
		UserID:    req.UserID,
		Type:      req.Type,
		LastFour:  req.LastFour,
		Provider:  req.Provider,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		serviceError(w, err, "Failed to add payment method")
		return
	}
	writeJSON(w, http.StatusCreated, method)
}
