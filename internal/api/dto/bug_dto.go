package dto

import (
	"time"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// CreateBugRequest payload.
type CreateBugRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	BountyAmount int64  `json:"bounty_amount"`
}

// PosterResponse is the public identity of the posting company.
type PosterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// BugResponse response.
type BugResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	BountyAmount int64            `json:"bounty_amount"`
	Status       domain.BugStatus `json:"status"`
	PostedBy     string           `json:"posted_by"`
	Poster       *PosterResponse  `json:"poster,omitempty"`
	Winner       *string          `json:"winner"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
}

// BugHistoryResponse is one audit entry.
type BugHistoryResponse struct {
	ID         string               `json:"id"`
	ChangedBy  *string              `json:"changed_by"`
	ChangeType domain.BugChangeType `json:"change_type"`
	OldValue   string               `json:"old_value"`
	NewValue   string               `json:"new_value"`
	CreatedAt  time.Time            `json:"created_at"`
}
