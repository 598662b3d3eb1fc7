package events

import (
	"time"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBugCreated         EventType = "bug_created"
	EventSubmissionReceived EventType = "submission_received"
	EventSubmissionApproved EventType = "submission_approved"
	EventSubmissionRejected EventType = "submission_rejected"
	EventBugStatusChanged   EventType = "bug_status_changed"
	EventBountyPaid         EventType = "bounty_paid"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	BugID     string      `json:"bug_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BugCreatedPayload payload.
type BugCreatedPayload struct {
	Title        string `json:"title"`
	BountyAmount int64  `json:"bounty_amount"`
}

// SubmissionReceivedPayload payload.
type SubmissionReceivedPayload struct {
	SubmissionID string `json:"submission_id"`
	ProofLink    string `json:"proof_link"`
}

// SubmissionDecisionPayload covers approvals and rejections.
type SubmissionDecisionPayload struct {
	SubmissionID string                  `json:"submission_id"`
	NewStatus    domain.SubmissionStatus `json:"new_status"`
}

// BugStatusChangedPayload payload.
type BugStatusChangedPayload struct {
	OldStatus domain.BugStatus `json:"old_status"`
	NewStatus domain.BugStatus `json:"new_status"`
	Comment   string           `json:"comment,omitempty"`
}

// BountyPaidPayload payload.
type BountyPaidPayload struct {
	SubmissionID string `json:"submission_id"`
	DeveloperID  string `json:"developer_id"`
	CompanyID    string `json:"company_id"`
	Amount       int64  `json:"amount"`
}
