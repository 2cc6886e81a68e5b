// Package models defines the core domain models for tabshare.
//
// # Entities
//
//   - User: a person who can participate in expense groups and record payments
//   - ExpenseGroup: a named shared cost split among up to six participants
//   - Participant: a user's membership in one group with an assigned owed amount
//   - Payment: a recorded contribution by a user toward a group's total
//   - PaymentMethod: a saved bank account or debit card belonging to a user
//   - Invite: a single-use, optionally time-limited code granting one join
//
// # Conventions
//
// All money values are integer cents (int64). Floats are never used for
// amounts, so stored values round-trip exactly. Timestamps are Unix seconds.
// Optional columns (email, description, expires_at, used_by, used_at,
// payment_method_id) are pointers and marshal to JSON null when unset.
//
// Category and PaymentMethodType are closed string enums with parse
// functions; an unknown value is rejected at the boundary rather than
// stored as free text.
package models
