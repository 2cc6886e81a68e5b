package service

import (
	"context"
	"errors"
	"log/slog"

	"tabshare/internal/models"
	"tabshare/internal/storage"
)

// PaymentService records payments and saved payment methods. It reads
// group state for referential checks but never mutates participant rows.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// AddPaymentInput is a payment creation request. PaymentDate of zero
// means "now". The payer does not have to be a group participant.
type AddPaymentInput struct {
	ExpenseGroupID  int64
	UserID          int64
	Amount          int64
	PaymentMethodID *int64
}

// AddPayment validates and records one payment against a group.
func (s *PaymentService) AddPayment(ctx context.Context, in AddPaymentInput) (*models.Payment, error) {
	if in.ExpenseGroupID == 0 {
		return nil, missingField("expense_group_id")
	}
	if in.UserID == 0 {
		return nil, missingField("user_id")
	}
	if in.Amount <= 0 {
		return nil, invalidField("amount", "amount must be positive")
	}

	if _, err := s.store.GetExpenseGroup(ctx, in.ExpenseGroupID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invalidField("expense_group_id", "expense group not found")
		}
		slog.Error("AddPayment group lookup failed", "group_id", in.ExpenseGroupID, "error", err)
		return nil, err
	}

	payment := &models.Payment{
		ExpenseGroupID:  in.ExpenseGroupID,
		UserID:          in.UserID,
		Amount:          in.Amount,
		PaymentMethodID: in.PaymentMethodID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("AddPayment failed", "group_id", in.ExpenseGroupID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"group_id", payment.ExpenseGroupID,
		"user_id", payment.UserID,
		"amount", payment.Amount,
	)
	return payment, nil
}

// AddPaymentMethodInput is a payment method creation request.
type AddPaymentMethodInput struct {
	UserID    int64
	Type      string
	LastFour  string
	Provider  string
	IsDefault bool
}

// AddPaymentMethod validates and saves a payment method for a user.
func (s *PaymentService) AddPaymentMethod(ctx context.Context, in AddPaymentMethodInput) (*models.PaymentMethod, error) {
	if in.UserID == 0 {
		return nil, missingField("user_id")
	}
	if in.Type == "" {
		return nil, missingField("type")
	}
	methodType, err := models.ParsePaymentMethodType(in.Type)
	if err != nil {
		return nil, invalidField("type", err.Error())
	}
	if in.LastFour == "" {
		return nil, missingField("last_four")
	}
	if !models.ValidLastFour(in.LastFour) {
		return nil, invalidField("last_four", "last_four must be exactly 4 digits")
	}
	if in.Provider == "" {
		return nil, missingField("provider")
	}

	method := &models.PaymentMethod{
		UserID:    in.UserID,
		Type:      methodType,
		LastFour:  in.LastFour,
		Provider:  in.Provider,
		IsDefault: in.IsDefault,
	}
	if err := s.store.CreatePaymentMethod(ctx, method); err != nil {
		slog.Error("AddPaymentMethod failed", "user_id", in.UserID, "error", err)
		return nil, err
	}

	slog.Info("Payment method saved",
		"method_id", method.ID,
		"user_id", method.UserID,
		"type", method.Type,
	)
	return method, nil
}

// ListPaymentMethods returns a user's saved methods, default first.
func (s *PaymentService) ListPaymentMethods(ctx context.Context, userID int64) ([]*models.PaymentMethod, error) {
	methods, err := s.store.ListPaymentMethods(ctx, userID)
	if err != nil {
		slog.Error("ListPaymentMethods failed", "user_id", userID, "error", err)
		return nil, err
	}
	return methods, nil
}
