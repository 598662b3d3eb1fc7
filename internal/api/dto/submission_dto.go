package dto

import (
	"time"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// SubmitSolutionRequest payload.
type SubmitSolutionRequest struct {
	BugID               string `json:"bug_id"`
	SolutionDescription string `json:"solution_description"`
	ProofLink           string `json:"proof_link"`
}

// SubmitterResponse is the public identity of the submitting developer.
type SubmitterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionResponse response.
type SubmissionResponse struct {
	ID                  string                  `json:"id"`
	BugID               string                  `json:"bug_id"`
	SubmittedBy         string                  `json:"submitted_by"`
	Submitter           *SubmitterResponse      `json:"submitter,omitempty"`
	SolutionDescription string                  `json:"solution_description"`
	ProofLink           string                  `json:"proof_link"`
	Status              domain.SubmissionStatus `json:"status"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}
