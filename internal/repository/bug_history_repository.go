package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// BugHistoryRepository stores audit entries.
type BugHistoryRepository interface {
	Create(ctx context.Context, history *domain.BugHistory) error
	ListByBug(ctx context.Context, bugID string) ([]domain.BugHistory, error)
}

type bugHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewBugHistoryRepository builds repository.
func NewBugHistoryRepository(pool *pgxpool.Pool) BugHistoryRepository {
	return &bugHistoryRepository{pool: pool}
}

func (r *bugHistoryRepository) Create(ctx context.Context, history *domain.BugHistory) error {
	const query = `
        INSERT INTO bug_history (bug_id, changed_by, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		history.BugID,
		history.ChangedBy,
		history.ChangeType,
		history.OldValue,
		history.NewValue,
	).Scan(&history.ID, &history.CreatedAt)
}

func (r *bugHistoryRepository) ListByBug(ctx context.Context, bugID string) ([]domain.BugHistory, error) {
	const query = `
        SELECT id, bug_id, changed_by, change_type, old_value, new_value, created_at
        FROM bug_history WHERE bug_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, bugID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BugHistory
	for rows.Next() {
		var history domain.BugHistory
		if err := rows.Scan(
			&history.ID,
			&history.BugID,
			&history.ChangedBy,
			&history.ChangeType,
			&history.OldValue,
			&history.NewValue,
			&history.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}
