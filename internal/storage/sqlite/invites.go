package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tabshare/internal/models"
	"tabshare/internal/storage"
)

// CreateInvite inserts a new invite. The invite_code column carries a
// unique constraint, so a generated-code collision fails the insert
// instead of silently overwriting an existing invite.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expense_invites (expense_group_id, invite_code, created_by, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		invite.ExpenseGroupID, invite.InviteCode, invite.CreatedBy, invite.CreatedAt, invite.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}

	invite.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get invite id: %w", err)
	}
	return nil
}

// GetInviteByCode retrieves an invite joined with its group name/category
// and creator name.
func (s *SQLiteStore) GetInviteByCode(ctx context.Context, code string) (*models.InviteView, error) {
	view := &models.InviteView{}
	var expiresAt, usedBy, usedAt sql.NullInt64
	var category string

	err := s.db.QueryRowContext(ctx,
		`SELECT expense_invites.id, expense_invites.expense_group_id, expense_invites.invite_code,
		        expense_invites.created_by, expense_invites.created_at,
		        expense_invites.expires_at, expense_invites.used_by, expense_invites.used_at,
		        expense_groups.name, expense_groups.category, users.name
		 FROM expense_invites
		 INNER JOIN expense_groups ON expense_groups.id = expense_invites.expense_group_id
		 INNER JOIN users ON users.id = expense_invites.created_by
		 WHERE expense_invites.invite_code = ?`, code,
	).Scan(&view.ID, &view.ExpenseGroupID, &view.InviteCode,
		&view.CreatedBy, &view.CreatedAt,
		&expiresAt, &usedBy, &usedAt,
		&view.ExpenseGroupName, &category, &view.CreatedByName)
	if err == sql.ErrNoRows {
		return nil, storage.ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	view.ExpenseGroupCategory = models.Category(category)
	if expiresAt.Valid {
		view.ExpiresAt = &expiresAt.Int64
	}
	if usedBy.Valid {
		view.UsedBy = &usedBy.Int64
	}
	if usedAt.Valid {
		view.UsedAt = &usedAt.Int64
	}
	return view, nil
}

// ListActiveInvites retrieves a group's invites that are unused, or used
// but created within the last 24 hours, excluding expired ones. The
// window intentionally hides old used invites from the management view
// while still surfacing very recent activity.
func (s *SQLiteStore) ListActiveInvites(ctx context.Context, groupID int64, now time.Time) ([]*models.ActiveInvite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_invites.id, expense_invites.expense_group_id, expense_invites.invite_code,
		        expense_invites.created_by, expense_invites.created_at,
		        expense_invites.expires_at, expense_invites.used_by, expense_invites.used_at,
		        users.name
		 FROM expense_invites
		 INNER JOIN users ON users.id = expense_invites.created_by
		 WHERE expense_invites.expense_group_id = ?
		   AND (expense_invites.used_by IS NULL OR expense_invites.created_at > ?)
		   AND (expense_invites.expires_at IS NULL OR expense_invites.expires_at > ?)
		 ORDER BY expense_invites.created_at DESC, expense_invites.id DESC`,
		groupID, now.Add(-24*time.Hour).Unix(), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active invites: %w", err)
	}
	defer rows.Close()

	var invites []*models.ActiveInvite
	for rows.Next() {
		inv := &models.ActiveInvite{}
		var expiresAt, usedBy, usedAt sql.NullInt64
		if err := rows.Scan(&inv.ID, &inv.ExpenseGroupID, &inv.InviteCode,
			&inv.CreatedBy, &inv.CreatedAt,
			&expiresAt, &usedBy, &usedAt, &inv.CreatedByName); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		if expiresAt.Valid {
			inv.ExpiresAt = &expiresAt.Int64
		}
		if usedBy.Valid {
			inv.UsedBy = &usedBy.Int64
		}
		if usedAt.Valid {
			inv.UsedAt = &usedAt.Int64
		}
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

// RedeemInvite atomically consumes an invite code for the given user.
//
// The invite is re-read inside the transaction, so the decision is made
// on the latest committed state. The UPDATE is additionally guarded with
// "used_by IS NULL"; a zero rows-affected result means another redemption
// committed first, which deterministically loses with ErrInviteUsed.
func (s *SQLiteStore) RedeemInvite(ctx context.Context, code string, userID, amountOwed int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var inviteID, groupID int64
	var expiresAt, usedBy sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT id, expense_group_id, expires_at, used_by
		 FROM expense_invites WHERE invite_code = ?`, code,
	).Scan(&inviteID, &groupID, &expiresAt, &usedBy)
	if err == sql.ErrNoRows {
		return 0, storage.ErrInviteNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get invite: %w", err)
	}

	now := time.Now()
	if expiresAt.Valid && now.Unix() > expiresAt.Int64 {
		return 0, storage.ErrInviteExpired
	}
	if usedBy.Valid {
		return 0, storage.ErrInviteUsed
	}

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM expense_participants WHERE expense_group_id = ? AND user_id = ?`,
		groupID, userID,
	).Scan(&one)
	if err == nil {
		return 0, storage.ErrAlreadyParticipant
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to check participant: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expense_participants (expense_group_id, user_id, amount_owed, created_at)
		 VALUES (?, ?, ?, ?)`,
		groupID, userID, amountOwed, now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert participant: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE expense_invites SET used_by = ?, used_at = ? WHERE id = ? AND used_by IS NULL`,
		userID, now.Unix(), inviteID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark invite used: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return 0, storage.ErrInviteUsed
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return groupID, nil
}
