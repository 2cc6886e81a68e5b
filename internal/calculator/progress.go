// Package calculator computes derived repayment figures for an expense
// group. Nothing here is ever stored: every value is recomputed from the
// current participant and payment rows on each request.
package calculator

import "tabshare/internal/models"

// ParticipantProgress is one participant's repayment standing.
type ParticipantProgress struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	AmountOwed int64  `json:"amount_owed"`
	AmountPaid int64  `json:"amount_paid"`

	// Remaining is AmountOwed minus AmountPaid; negative means overpaid.
	Remaining int64 `json:"remaining"`
}

// Progress summarizes how far a group is toward being settled.
type Progress struct {
	TotalPaid       int64                 `json:"total_paid"`
	ProgressPercent int                   `json:"progress_percent"`
	Participants    []ParticipantProgress `json:"participants"`
}

// GroupProgress computes the group's paid total, its rounded progress
// percentage capped at 100, and a per-participant breakdown. Payments by
// non-participants count toward the group total but get no breakdown row.
func GroupProgress(detail *models.GroupDetail) Progress {
	paidBy := make(map[int64]int64)
	var totalPaid int64
	for _, p := range detail.Payments {
		totalPaid += p.Amount
		paidBy[p.UserID] += p.Amount
	}

	progress := Progress{
		TotalPaid:       totalPaid,
		ProgressPercent: percent(totalPaid, detail.TotalAmount),
	}

	for _, p := range detail.Participants {
		paid := paidBy[p.UserID]
		progress.Participants = append(progress.Participants, ParticipantProgress{
			UserID:     p.UserID,
			Name:       p.Name,
			AmountOwed: p.AmountOwed,
			AmountPaid: paid,
			Remaining:  p.AmountOwed - paid,
		})
	}
	return progress
}

// percent returns round(paid/total*100) capped at 100, in integer math.
func percent(paid, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int((paid*100 + total/2) / total)
	if pct > 100 {
		pct = 100
	}
	return pct
}
