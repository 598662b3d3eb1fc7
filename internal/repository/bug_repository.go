package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// BugRepository encapsulates bug persistence.
type BugRepository interface {
	Create(ctx context.Context, bug *domain.Bug) error
	Update(ctx context.Context, bug *domain.Bug) error
	GetByID(ctx context.Context, id string) (*domain.Bug, error)
	GetWithPoster(ctx context.Context, id string) (*domain.BugWithPoster, error)
	ListWithPoster(ctx context.Context) ([]domain.BugWithPoster, error)
}

type bugRepository struct {
	pool *pgxpool.Pool
}

// NewBugRepository instantiates repository.
func NewBugRepository(pool *pgxpool.Pool) BugRepository {
	return &bugRepository{pool: pool}
}

func (r *bugRepository) Create(ctx context.Context, bug *domain.Bug) error {
	const query = `
        INSERT INTO bugs (title, description, bounty_amount, status, posted_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		bug.Title,
		bug.Description,
		bug.BountyAmount,
		bug.Status,
		bug.PostedBy,
	).Scan(&bug.ID, &bug.CreatedAt, &bug.UpdatedAt)
}

// Update persists status, winner and closed_at. Title, description, bounty
// amount and poster are immutable after creation and never written back.
func (r *bugRepository) Update(ctx context.Context, bug *domain.Bug) error {
	const query = `
        UPDATE bugs SET status=$1, winner=$2, closed_at=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		bug.Status,
		bug.Winner,
		bug.ClosedAt,
		bug.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bugRepository) GetByID(ctx context.Context, id string) (*domain.Bug, error) {
	const query = `
        SELECT id, title, description, bounty_amount, status, posted_by, winner,
               created_at, updated_at, closed_at
        FROM bugs WHERE id=$1`
	var bug domain.Bug
	if err := r.pool.QueryRow(ctx, query, id).Scan(
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
	return &bug, nil
}

func (r *bugRepository) GetWithPoster(ctx context.Context, id string) (*domain.BugWithPoster, error) {
	const query = `
        SELECT b.id, b.title, b.description, b.bounty_amount, b.status, b.posted_by, b.winner,
               b.created_at, b.updated_at, b.closed_at,
               u.id, u.name, u.email
        FROM bugs b
        JOIN users u ON u.id = b.posted_by
        WHERE b.id=$1`
	var item domain.BugWithPoster
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.BountyAmount,
		&item.Status,
		&item.PostedBy,
		&item.Winner,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.ClosedAt,
		&item.Poster.ID,
		&item.Poster.Name,
		&item.Poster.Email,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *bugRepository) ListWithPoster(ctx context.Context) ([]domain.BugWithPoster, error) {
	const query = `
        SELECT b.id, b.title, b.description, b.bounty_amount, b.status, b.posted_by, b.winner,
               b.created_at, b.updated_at, b.closed_at,
               u.id, u.name, u.email
        FROM bugs b
        JOIN users u ON u.id = b.posted_by
        ORDER BY b.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BugWithPoster
	for rows.Next() {
		var item domain.BugWithPoster
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.BountyAmount,
			&item.Status,
			&item.PostedBy,
			&item.Winner,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.ClosedAt,
			&item.Poster.ID,
			&item.Poster.Name,
			&item.Poster.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
