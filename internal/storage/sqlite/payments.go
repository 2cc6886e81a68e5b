package sqlite

import (
	"context"
	"fmt"
	"time"

	"tabshare/internal/models"
)

// CreatePayment inserts a new payment row. PaymentDate defaults to now
// when unset.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.PaymentDate == 0 {
		payment.PaymentDate = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (expense_group_id, user_id, amount, payment_date, payment_method_id)
		 VALUES (?, ?, ?, ?, ?)`,
		payment.ExpenseGroupID, payment.UserID, payment.Amount, payment.PaymentDate, payment.PaymentMethodID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	payment.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get payment id: %w", err)
	}
	return nil
}

// CreatePaymentMethod inserts a new payment method.
//
// is_default is written as given: there is no atomic clearing of a user's
// previous default, so two methods can both carry the flag.
func (s *SQLiteStore) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	if method.CreatedAt == 0 {
		method.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payment_methods (user_id, type, last_four, provider, is_default, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		method.UserID, string(method.Type), method.LastFour, method.Provider, method.IsDefault, method.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment method: %w", err)
	}

	method.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get payment method id: %w", err)
	}
	return nil
}

// ListPaymentMethods retrieves a user's payment methods, default first.
func (s *SQLiteStore) ListPaymentMethods(ctx context.Context, userID int64) ([]*models.PaymentMethod, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, type, last_four, provider, is_default, created_at
		 FROM payment_methods WHERE user_id = ?
		 ORDER BY is_default DESC, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []*models.PaymentMethod
	for rows.Next() {
		m := &models.PaymentMethod{}
		var methodType string
		if err := rows.Scan(&m.ID, &m.UserID, &methodType, &m.LastFour,
			&m.Provider, &m.IsDefault, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		m.Type = models.PaymentMethodType(methodType)
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}
	return methods, nil
}
