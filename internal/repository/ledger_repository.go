package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// Sentinel errors surfaced by the award transaction when the state changed
// between the service-level check and the row lock.
var (
	ErrBugAlreadyClosed     = errors.New("bug already closed")
	ErrSubmissionNotPending = errors.New("submission not pending")
)

// BountyAward names the parties of an approval transfer.
type BountyAward struct {
	BugID        string
	SubmissionID string
	DeveloperID  string
	CompanyID    string
	Amount       int64
}

// LedgerRepository performs balance mutations. Deposit is a single atomic
// increment; AwardBounty runs the whole approval sequence in one transaction.
type LedgerRepository interface {
	Deposit(ctx context.Context, userID string, amount int64) (int64, error)
	AwardBounty(ctx context.Context, award BountyAward) (*domain.Bug, error)
}

type ledgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository instantiates repository.
func NewLedgerRepository(pool *pgxpool.Pool) LedgerRepository {
	return &ledgerRepository{pool: pool}
}

func (r *ledgerRepository) Deposit(ctx context.Context, userID string, amount int64) (int64, error) {
	const query = `
        UPDATE users SET balance = balance + $1, updated_at=NOW()
        WHERE id=$2
        RETURNING balance`
	var balance int64
	if err := r.pool.QueryRow(ctx, query, amount, userID).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// AwardBounty closes the bug, approves the submission and moves the bounty
// between the two balances as one unit. The bug row is locked first so
// concurrent approvals on the same bug serialize; the loser observes the
// closed status under the lock and gets ErrBugAlreadyClosed.
func (r *ledgerRepository) AwardBounty(ctx context.Context, award BountyAward) (*domain.Bug, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var status domain.BugStatus
	if err := tx.QueryRow(ctx,
		`SELECT status FROM bugs WHERE id=$1 FOR UPDATE`, award.BugID,
	).Scan(&status); err != nil {
		return nil, err
	}
	if status == domain.BugStatusClosed {
		return nil, ErrBugAlreadyClosed
	}

	cmd, err := tx.Exec(ctx,
		`UPDATE submissions SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
		domain.SubmissionStatusApproved, award.SubmissionID, domain.SubmissionStatusPending,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrSubmissionNotPending
	}

	var bug domain.Bug
	if err := tx.QueryRow(ctx,
		`UPDATE bugs SET status=$1, winner=$2, closed_at=NOW(), updated_at=NOW()
         WHERE id=$3
         RETURNING id, title, description, bounty_amount, status, posted_by, winner,
                   created_at, updated_at, closed_at`,
		domain.BugStatusClosed, award.DeveloperID, award.BugID,
	).Scan(
		&bug.ID,
		&bug.Title,
		&bug.Description,
		&bug.BountyAmount,
		&bug.Status,
		&bug.PostedBy,
		&bug.Winner,
		&bug.CreatedAt,
		&bug.UpdatedAt,
		&bug.ClosedAt,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET balance = balance + $1, updated_at=NOW() WHERE id=$2`,
		award.Amount, award.DeveloperID,
	); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET balance = balance - $1, updated_at=NOW() WHERE id=$2`,
		award.Amount, award.CompanyID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &bug, nil
}
