package domain

import "time"

// BugStatus enumerates lifecycle states for posted bugs.
type BugStatus string

const (
	BugStatusOpen     BugStatus = "open"
	BugStatusInReview BugStatus = "in_review"
	BugStatusClosed   BugStatus = "closed"
)

// Bug is the aggregate for a posted bounty. BountyAmount is fixed at creation;
// Winner is set exactly once, when a submission is approved and the bug closes.
type Bug struct {
	ID           string
	Title        string
	Description  string
	BountyAmount int64
	Status       BugStatus
	PostedBy     string
	Winner       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     *time.Time
}

// PosterIdentity carries the public identity of the posting company,
// attached to bug listings.
type PosterIdentity struct {
	ID    string
	Name  string
	Email string
}

// BugWithPoster pairs a bug with its poster's public identity.
type BugWithPoster struct {
	Bug
	Poster PosterIdentity
}
