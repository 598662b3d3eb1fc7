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

// BugListCache caches the public bug listing.
type BugListCache interface {
	Get(ctx context.Context) ([]domain.BugWithPoster, bool)
	Set(ctx context.Context, items []domain.BugWithPoster)
	Invalidate(ctx context.Context)
}

// BugService coordinates the bug registry.
type BugService struct {
	bugs       repository.BugRepository
	users      repository.UserRepository
	history    repository.BugHistoryRepository
	cache      BugListCache
	dispatcher events.Dispatcher
}

// BugDependencies bundles requirements for the bug service.
type BugDependencies struct {
	BugRepo     repository.BugRepository
	UserRepo    repository.UserRepository
	HistoryRepo repository.BugHistoryRepository
	Cache       BugListCache
	Dispatcher  events.Dispatcher
}

// BugCreateInput describes bug creation payload.
type BugCreateInput struct {
	Title        string
	Description  string
	BountyAmount int64
}

// NewBugService constructs the service.
func NewBugService(deps BugDependencies) *BugService {
	return &BugService{
		bugs:       deps.BugRepo,
		users:      deps.UserRepo,
		history:    deps.HistoryRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// Create posts a new bug. The company balance is checked against the bounty
// but not reserved; funds remain spendable until a submission is approved.
func (s *BugService) Create(ctx context.Context, companyID string, input BugCreateInput) (*domain.Bug, error) {
	if input.BountyAmount <= 0 {
		return nil, apperrors.NewValidationError("bounty_amount must be positive", nil)
	}

	company, err := s.users.GetByID(ctx, companyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	if company.Balance < input.BountyAmount {
		return nil, apperrors.NewInsufficientFunds(company.Balance, input.BountyAmount)
	}

	bug := &domain.Bug{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		BountyAmount: input.BountyAmount,
		Status:       domain.BugStatusOpen,
		PostedBy:     companyID,
	}
	if err := s.bugs.Create(ctx, bug); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventBugCreated,
		BugID: bug.ID,
		Actor: events.Actor{UserID: companyID, Role: domain.RoleCompany},
		Payload: events.BugCreatedPayload{
			Title:        bug.Title,
			BountyAmount: bug.BountyAmount,
		},
	})
	return bug, nil
}

// List returns all bugs with poster identities, newest first.
func (s *BugService) List(ctx context.Context) ([]domain.BugWithPoster, error) {
	if s.cache != nil {
		if items, ok := s.cache.Get(ctx); ok {
			return items, nil
		}
	}
	items, err := s.bugs.ListWithPoster(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, items)
	}
	return items, nil
}

// Get returns a single bug with its poster identity.
func (s *BugService) Get(ctx context.Context, id string) (*domain.BugWithPoster, error) {
	bug, err := s.bugs.GetWithPoster(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("bug", map[string]any{"id": id})
		}
		return nil, err
	}
	return bug, nil
}

// History returns the audit trail of a bug's transitions.
func (s *BugService) History(ctx context.Context, bugID string) ([]domain.BugHistory, error) {
	if _, err := s.bugs.GetByID(ctx, bugID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("bug", map[string]any{"id": bugID})
		}
		return nil, err
	}
	return s.history.ListByBug(ctx, bugID)
}
