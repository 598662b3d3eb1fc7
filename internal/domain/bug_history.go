package domain

import "time"

// BugChangeType identifies what kind of transition a history entry records.
type BugChangeType string

const (
	ChangeTypeStatus BugChangeType = "status"
	ChangeTypeWinner BugChangeType = "winner"
)

// BugHistory is an audit entry for a bug state transition.
type BugHistory struct {
	ID         string
	BugID      string
	ChangedBy  *string
	ChangeType BugChangeType
	OldValue   string
	NewValue   string
	CreatedAt  time.Time
}
