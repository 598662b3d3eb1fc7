package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/repository"
	apperrors "github.com/bountyboard/bounty-service/pkg/util"
)

// LedgerService exposes account balance operations. Bounty transfers are not
// reachable from here; they only happen inside the approval transaction owned
// by the submission workflow.
type LedgerService struct {
	users  repository.UserRepository
	ledger repository.LedgerRepository
}

// NewLedgerService builds the service.
func NewLedgerService(users repository.UserRepository, ledger repository.LedgerRepository) *LedgerService {
	return &LedgerService{users: users, ledger: ledger}
}

// Deposit credits the account and returns the new balance.
func (s *LedgerService) Deposit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.NewInvalidAmount(amount)
	}
	balance, err := s.ledger.Deposit(ctx, userID, amount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.NewNotFound("account", nil)
		}
		return 0, err
	}
	return balance, nil
}

// Profile returns the account's identity, role and balance.
func (s *LedgerService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	return user, nil
}
