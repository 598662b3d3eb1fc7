package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// SubmissionRepository encapsulates submission persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	ListByBug(ctx context.Context, bugID string) ([]domain.SubmissionWithSubmitter, error)
	ListStatusesByBug(ctx context.Context, bugID string) ([]domain.SubmissionStatus, error)
}

type submissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository instantiates repository.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

func (r *submissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	const query = `
        INSERT INTO submissions (bug_id, submitted_by, solution_description, proof_link, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		submission.BugID,
		submission.SubmittedBy,
		submission.SolutionDescription,
		submission.ProofLink,
		submission.Status,
	).Scan(&submission.ID, &submission.CreatedAt, &submission.UpdatedAt)
}

func (r *submissionRepository) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error {
	const query = `
        UPDATE submissions SET status=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	const query = `
        SELECT id, bug_id, submitted_by, solution_description, proof_link, status, created_at, updated_at
        FROM submissions WHERE id=$1`
	var submission domain.Submission
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&submission.ID,
		&submission.BugID,
		&submission.SubmittedBy,
		&submission.SolutionDescription,
		&submission.ProofLink,
		&submission.Status,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) ListByBug(ctx context.Context, bugID string) ([]domain.SubmissionWithSubmitter, error) {
	const query = `
        SELECT s.id, s.bug_id, s.submitted_by, s.solution_description, s.proof_link, s.status,
               s.created_at, s.updated_at,
               u.id, u.name, u.email
        FROM submissions s
        JOIN users u ON u.id = s.submitted_by
        WHERE s.bug_id=$1
        ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(ctx, query, bugID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SubmissionWithSubmitter
	for rows.Next() {
		var item domain.SubmissionWithSubmitter
		if err := rows.Scan(
			&item.ID,
			&item.BugID,
			&item.SubmittedBy,
			&item.SolutionDescription,
			&item.ProofLink,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Submitter.ID,
			&item.Submitter.Name,
			&item.Submitter.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// ListStatusesByBug supports the all-rejected sweep after a rejection.
func (r *submissionRepository) ListStatusesByBug(ctx context.Context, bugID string) ([]domain.SubmissionStatus, error) {
	const query = `SELECT status FROM submissions WHERE bug_id=$1`
	rows, err := r.pool.Query(ctx, query, bugID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.SubmissionStatus
	for rows.Next() {
		var status domain.SubmissionStatus
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}
