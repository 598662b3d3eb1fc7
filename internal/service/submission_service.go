package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/events"
	"github.com/bountyboard/bounty-service/internal/repository"
	apperrors "github.com/bountyboard/bounty-service/pkg/util"
)

// SubmissionService drives the submission workflow: submissions move
// pending -> approved|rejected, and pull the bug through
// open -> in_review -> closed|open.
type SubmissionService struct {
	bugs        repository.BugRepository
	submissions repository.SubmissionRepository
	ledger      repository.LedgerRepository
	history     repository.BugHistoryRepository
	cache       BugListCache
	dispatcher  events.Dispatcher
}

// SubmissionDependencies bundles requirements for the workflow service.
type SubmissionDependencies struct {
	BugRepo        repository.BugRepository
	SubmissionRepo repository.SubmissionRepository
	LedgerRepo     repository.LedgerRepository
	HistoryRepo    repository.BugHistoryRepository
	Cache          BugListCache
	Dispatcher     events.Dispatcher
}

// SubmitInput describes a new solution submission.
type SubmitInput struct {
	BugID               string
	SolutionDescription string
	ProofLink           string
}

// NewSubmissionService constructs the service.
func NewSubmissionService(deps SubmissionDependencies) *SubmissionService {
	return &SubmissionService{
		bugs:        deps.BugRepo,
		submissions: deps.SubmissionRepo,
		ledger:      deps.LedgerRepo,
		history:     deps.HistoryRepo,
		cache:       deps.Cache,
		dispatcher:  deps.Dispatcher,
	}
}

// Submit records a developer's solution. A submission against a closed bug is
// still accepted; the status nudge to in_review only fires from open.
func (s *SubmissionService) Submit(ctx context.Context, developerID string, input SubmitInput) (*domain.Submission, error) {
	bug, err := s.bugs.GetByID(ctx, input.BugID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("bug", map[string]any{"id": input.BugID})
		}
		return nil, err
	}

	submission := &domain.Submission{
		BugID:               bug.ID,
		SubmittedBy:         developerID,
		SolutionDescription: strings.TrimSpace(input.SolutionDescription),
		ProofLink:           strings.TrimSpace(input.ProofLink),
		Status:              domain.SubmissionStatusPending,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	if bug.Status == domain.BugStatusOpen {
		if err := s.transitionBug(ctx, bug, domain.BugStatusInReview, &developerID, "first_submission"); err != nil {
			return nil, err
		}
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventSubmissionReceived,
		BugID: bug.ID,
		Actor: events.Actor{UserID: developerID, Role: domain.RoleDeveloper},
		Payload: events.SubmissionReceivedPayload{
			SubmissionID: submission.ID,
			ProofLink:    submission.ProofLink,
		},
	})
	return submission, nil
}

// ListForBug returns submissions for a bug with submitter identities, newest first.
func (s *SubmissionService) ListForBug(ctx context.Context, bugID string) ([]domain.SubmissionWithSubmitter, error) {
	return s.submissions.ListByBug(ctx, bugID)
}

// Approve closes the bug and pays the bounty. The submission update, bug
// close, developer credit and company debit commit as one transaction keyed
// by the bug row lock; a concurrent approval on the same bug loses the lock
// race and fails with INVALID_STATE instead of double-paying.
func (s *SubmissionService) Approve(ctx context.Context, callerID, submissionID string) (*domain.Bug, error) {
	submission, bug, err := s.loadForDecision(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if bug.PostedBy != callerID {
		return nil, apperrors.NewUnauthorized("only the posting company can approve submissions")
	}
	if bug.Status == domain.BugStatusClosed {
		return nil, apperrors.NewInvalidState("bug is already closed", map[string]any{"bug_id": bug.ID})
	}
	if submission.Status != domain.SubmissionStatusPending {
		return nil, apperrors.NewInvalidState("submission already processed", map[string]any{"submission_id": submission.ID})
	}

	oldStatus := bug.Status
	closed, err := s.ledger.AwardBounty(ctx, repository.BountyAward{
		BugID:        bug.ID,
		SubmissionID: submission.ID,
		DeveloperID:  submission.SubmittedBy,
		CompanyID:    bug.PostedBy,
		Amount:       bug.BountyAmount,
	})
	if err != nil {
		switch err {
		case repository.ErrBugAlreadyClosed:
			return nil, apperrors.NewInvalidState("bug is already closed", map[string]any{"bug_id": bug.ID})
		case repository.ErrSubmissionNotPending:
			return nil, apperrors.NewInvalidState("submission already processed", map[string]any{"submission_id": submission.ID})
		}
		return nil, err
	}

	s.recordStatusChange(ctx, closed.ID, &callerID, oldStatus, closed.Status)
	s.recordHistory(ctx, &domain.BugHistory{
		BugID:      closed.ID,
		ChangedBy:  &callerID,
		ChangeType: domain.ChangeTypeWinner,
		OldValue:   "",
		NewValue:   submission.SubmittedBy,
	})
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	actor := events.Actor{UserID: callerID, Role: domain.RoleCompany}
	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventSubmissionApproved,
		BugID: closed.ID,
		Actor: actor,
		Payload: events.SubmissionDecisionPayload{
			SubmissionID: submission.ID,
			NewStatus:    domain.SubmissionStatusApproved,
		},
	})
	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventBountyPaid,
		BugID: closed.ID,
		Actor: actor,
		Payload: events.BountyPaidPayload{
			SubmissionID: submission.ID,
			DeveloperID:  submission.SubmittedBy,
			CompanyID:    bug.PostedBy,
			Amount:       bug.BountyAmount,
		},
	})
	return closed, nil
}

// Reject marks a pending submission rejected. When that leaves every
// submission for the bug rejected and the bug is in review, the bug reopens;
// a mix of pending and rejected submissions leaves it in review.
func (s *SubmissionService) Reject(ctx context.Context, callerID, submissionID string) (*domain.Submission, error) {
	submission, bug, err := s.loadForDecision(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if bug.PostedBy != callerID {
		return nil, apperrors.NewUnauthorized("only the posting company can reject submissions")
	}
	if submission.Status != domain.SubmissionStatusPending {
		return nil, apperrors.NewInvalidState("submission already processed", map[string]any{"submission_id": submission.ID})
	}

	if err := s.submissions.UpdateStatus(ctx, submission.ID, domain.SubmissionStatusRejected); err != nil {
		return nil, err
	}
	submission.Status = domain.SubmissionStatusRejected

	statuses, err := s.submissions.ListStatusesByBug(ctx, bug.ID)
	if err != nil {
		return nil, err
	}
	allRejected := len(statuses) > 0
	for _, status := range statuses {
		if status != domain.SubmissionStatusRejected {
			allRejected = false
			break
		}
	}
	if allRejected && bug.Status == domain.BugStatusInReview {
		if err := s.transitionBug(ctx, bug, domain.BugStatusOpen, &callerID, "all_submissions_rejected"); err != nil {
			return nil, err
		}
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventSubmissionRejected,
		BugID: bug.ID,
		Actor: events.Actor{UserID: callerID, Role: domain.RoleCompany},
		Payload: events.SubmissionDecisionPayload{
			SubmissionID: submission.ID,
			NewStatus:    domain.SubmissionStatusRejected,
		},
	})
	return submission, nil
}

func (s *SubmissionService) loadForDecision(ctx context.Context, submissionID string) (*domain.Submission, *domain.Bug, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("submission", map[string]any{"id": submissionID})
		}
		return nil, nil, err
	}
	bug, err := s.bugs.GetByID(ctx, submission.BugID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("bug", map[string]any{"id": submission.BugID})
		}
		return nil, nil, err
	}
	return submission, bug, nil
}

func (s *SubmissionService) transitionBug(ctx context.Context, bug *domain.Bug, newStatus domain.BugStatus, actorID *string, comment string) error {
	oldStatus := bug.Status
	bug.Status = newStatus
	if err := s.bugs.Update(ctx, bug); err != nil {
		return err
	}
	s.recordStatusChange(ctx, bug.ID, actorID, oldStatus, newStatus)
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	var actor events.Actor
	if actorID != nil {
		actor.UserID = *actorID
	}
	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventBugStatusChanged,
		BugID: bug.ID,
		Actor: actor,
		Payload: events.BugStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
		},
	})
	return nil
}

// recordStatusChange appends an audit entry; audit failures are not allowed
// to fail the workflow operation that already committed.
func (s *SubmissionService) recordStatusChange(ctx context.Context, bugID string, actorID *string, oldStatus, newStatus domain.BugStatus) {
	s.recordHistory(ctx, &domain.BugHistory{
		BugID:      bugID,
		ChangedBy:  actorID,
		ChangeType: domain.ChangeTypeStatus,
		OldValue:   string(oldStatus),
		NewValue:   string(newStatus),
	})
}

func (s *SubmissionService) recordHistory(ctx context.Context, entry *domain.BugHistory) {
	if s.history == nil {
		return
	}
	_ = s.history.Create(ctx, entry)
}
