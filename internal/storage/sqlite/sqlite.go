// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"tabshare/internal/models"
	"tabshare/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
//
// Transactions are opened with BEGIN IMMEDIATE (_txlock=immediate) so a
// transaction holds the write lock from the start: a concurrent invite
// redemption waits on busy_timeout instead of failing mid-transaction,
// then observes the winner's committed state.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateExpenseGroup persists a group and its participant rows in one
// transaction. No partial state is ever visible: a failed participant
// insert rolls back the group row too.
func (s *SQLiteStore) CreateExpenseGroup(ctx context.Context, group *models.ExpenseGroup, participants []models.Participant) error {
	now := time.Now().Unix()
	if group.CreatedAt == 0 {
		group.CreatedAt = now
	}
	if group.UpdatedAt == 0 {
		group.UpdatedAt = group.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO expense_groups (name, description, category, total_amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.Name, group.Description, string(group.Category), group.TotalAmount, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense group: %w", err)
	}
	group.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense group id: %w", err)
	}

	for i := range participants {
		p := &participants[i]
		p.ExpenseGroupID = group.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_participants (expense_group_id, user_id, amount_owed, created_at)
			 VALUES (?, ?, ?, ?)`,
			p.ExpenseGroupID, p.UserID, p.AmountOwed, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenseGroups retrieves all expense groups, newest first.
func (s *SQLiteStore) ListExpenseGroups(ctx context.Context) ([]*models.ExpenseGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, category, total_amount, created_at, updated_at
		 FROM expense_groups ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.ExpenseGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense groups: %w", err)
	}
	return groups, nil
}

// GetExpenseGroup retrieves a single expense group row by ID.
func (s *SQLiteStore) GetExpenseGroup(ctx context.Context, id int64) (*models.ExpenseGroup, error) {
	group := &models.ExpenseGroup{}
	var description sql.NullString
	var category string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, category, total_amount, created_at, updated_at
		 FROM expense_groups WHERE id = ?`, id,
	).Scan(&group.ID, &group.Name, &description, &category,
		&group.TotalAmount, &group.CreatedAt, &group.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense group: %w", err)
	}
	if description.Valid {
		group.Description = &description.String
	}
	group.Category = models.Category(category)
	return group, nil
}

// GetGroupDetail retrieves a group with its participants (join order) and
// payments (newest first), denormalized with user and payment method info.
func (s *SQLiteStore) GetGroupDetail(ctx context.Context, id int64) (*models.GroupDetail, error) {
	detail := &models.GroupDetail{}
	var description sql.NullString
	var category string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, category, total_amount, created_at, updated_at
		 FROM expense_groups WHERE id = ?`, id,
	).Scan(&detail.ID, &detail.Name, &description, &category,
		&detail.TotalAmount, &detail.CreatedAt, &detail.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense group: %w", err)
	}
	if description.Valid {
		detail.Description = &description.String
	}
	detail.Category = models.Category(category)

	rows, err := s.db.QueryContext(ctx,
		`SELECT users.id, users.name, users.email, expense_participants.amount_owed
		 FROM expense_participants
		 INNER JOIN users ON users.id = expense_participants.user_id
		 WHERE expense_participants.expense_group_id = ?
		 ORDER BY expense_participants.id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ParticipantDetail
		var email sql.NullString
		if err := rows.Scan(&p.UserID, &p.Name, &email, &p.AmountOwed); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if email.Valid {
			p.Email = &email.String
		}
		detail.Participants = append(detail.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	payRows, err := s.db.QueryContext(ctx,
		`SELECT payments.id, payments.amount, payments.payment_date,
		        users.id, users.name,
		        payment_methods.type, payment_methods.last_four, payment_methods.provider
		 FROM payments
		 INNER JOIN users ON users.id = payments.user_id
		 LEFT JOIN payment_methods ON payment_methods.id = payments.payment_method_id
		 WHERE payments.expense_group_id = ?
		 ORDER BY payments.payment_date DESC, payments.id DESC`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var p models.PaymentDetail
		var methodType, lastFour, provider sql.NullString
		if err := payRows.Scan(&p.ID, &p.Amount, &p.PaymentDate,
			&p.UserID, &p.UserName, &methodType, &lastFour, &provider); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if methodType.Valid {
			mt := models.PaymentMethodType(methodType.String)
			p.PaymentMethodType = &mt
		}
		if lastFour.Valid {
			p.LastFour = &lastFour.String
		}
		if provider.Valid {
			p.Provider = &provider.String
		}
		detail.Payments = append(detail.Payments, p)
	}
	if err := payRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return detail, nil
}

// scanGroup scans one expense_groups row from a rows cursor.
func scanGroup(rows *sql.Rows) (*models.ExpenseGroup, error) {
	group := &models.ExpenseGroup{}
	var description sql.NullString
	var category string
	if err := rows.Scan(&group.ID, &group.Name, &description, &category,
		&group.TotalAmount, &group.CreatedAt, &group.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan expense group: %w", err)
	}
	if description.Valid {
		group.Description = &description.String
	}
	group.Category = models.Category(category)
	return group, nil
}
