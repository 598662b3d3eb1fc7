package domain

import "time"

// SubmissionStatus enumerates lifecycle states for submissions.
// Both approved and rejected are terminal.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Submission is a developer's proposed solution for a bug.
type Submission struct {
	ID                  string
	BugID               string
	SubmittedBy         string
	SolutionDescription string
	ProofLink           string
	Status              SubmissionStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SubmitterIdentity is the public identity attached to submission listings.
type SubmitterIdentity struct {
	ID    string
	Name  string
	Email string
}

// SubmissionWithSubmitter pairs a submission with its author's public identity.
type SubmissionWithSubmitter struct {
	Submission
	Submitter SubmitterIdentity
}
