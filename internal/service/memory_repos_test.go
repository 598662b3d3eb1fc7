package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/repository"
)

// In-memory repository fakes backing the service tests. They mirror the
// Postgres implementations' semantics, including pgx.ErrNoRows for misses.

type memUserRepo struct {
	seq     int
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	u.UpdatedAt = time.Now()
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

type memBugRepo struct {
	seq   int
	byID  map[string]*domain.Bug
	users *memUserRepo
}

func newMemBugRepo(users *memUserRepo) *memBugRepo {
	return &memBugRepo{byID: map[string]*domain.Bug{}, users: users}
}

func (m *memBugRepo) Create(_ context.Context, bug *domain.Bug) error {
	m.seq++
	bug.ID = fmt.Sprintf("bug-%d", m.seq)
	bug.CreatedAt = time.Now()
	bug.UpdatedAt = bug.CreatedAt
	stored := *bug
	m.byID[bug.ID] = &stored
	return nil
}

func (m *memBugRepo) Update(_ context.Context, bug *domain.Bug) error {
	stored, ok := m.byID[bug.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = bug.Status
	stored.Winner = bug.Winner
	stored.ClosedAt = bug.ClosedAt
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *memBugRepo) GetByID(_ context.Context, id string) (*domain.Bug, error) {
	bug, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *bug
	return &copied, nil
}

func (m *memBugRepo) GetWithPoster(ctx context.Context, id string) (*domain.BugWithPoster, error) {
	bug, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	poster, err := m.users.GetByID(ctx, bug.PostedBy)
	if err != nil {
		return nil, err
	}
	return &domain.BugWithPoster{
		Bug:    *bug,
		Poster: domain.PosterIdentity{ID: poster.ID, Name: poster.Name, Email: poster.Email},
	}, nil
}

func (m *memBugRepo) ListWithPoster(ctx context.Context) ([]domain.BugWithPoster, error) {
	var result []domain.BugWithPoster
	for id := range m.byID {
		item, err := m.GetWithPoster(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}

type memSubmissionRepo struct {
	seq   int
	byID  map[string]*domain.Submission
	users *memUserRepo
}

func newMemSubmissionRepo(users *memUserRepo) *memSubmissionRepo {
	return &memSubmissionRepo{byID: map[string]*domain.Submission{}, users: users}
}

func (m *memSubmissionRepo) Create(_ context.Context, s *domain.Submission) error {
	m.seq++
	s.ID = fmt.Sprintf("sub-%d", m.seq)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	stored := *s
	m.byID[s.ID] = &stored
	return nil
}

func (m *memSubmissionRepo) UpdateStatus(_ context.Context, id string, status domain.SubmissionStatus) error {
	stored, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *memSubmissionRepo) GetByID(_ context.Context, id string) (*domain.Submission, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (m *memSubmissionRepo) ListByBug(ctx context.Context, bugID string) ([]domain.SubmissionWithSubmitter, error) {
	var result []domain.SubmissionWithSubmitter
	for _, s := range m.byID {
		if s.BugID != bugID {
			continue
		}
		submitter, err := m.users.GetByID(ctx, s.SubmittedBy)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.SubmissionWithSubmitter{
			Submission: *s,
			Submitter:  domain.SubmitterIdentity{ID: submitter.ID, Name: submitter.Name, Email: submitter.Email},
		})
	}
	return result, nil
}

func (m *memSubmissionRepo) ListStatusesByBug(_ context.Context, bugID string) ([]domain.SubmissionStatus, error) {
	var statuses []domain.SubmissionStatus
	for _, s := range m.byID {
		if s.BugID == bugID {
			statuses = append(statuses, s.Status)
		}
	}
	return statuses, nil
}

// memLedgerRepo applies the same all-or-nothing semantics as the Postgres
// award transaction, against the in-memory stores.
type memLedgerRepo struct {
	users *memUserRepo
	bugs  *memBugRepo
	subs  *memSubmissionRepo
}

func (m *memLedgerRepo) Deposit(_ context.Context, userID string, amount int64) (int64, error) {
	u, ok := m.users.byID[userID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	u.Balance += amount
	u.UpdatedAt = time.Now()
	return u.Balance, nil
}

func (m *memLedgerRepo) AwardBounty(_ context.Context, award repository.BountyAward) (*domain.Bug, error) {
	bug, ok := m.bugs.byID[award.BugID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if bug.Status == domain.BugStatusClosed {
		return nil, repository.ErrBugAlreadyClosed
	}
	sub, ok := m.subs.byID[award.SubmissionID]
	if !ok || sub.Status != domain.SubmissionStatusPending {
		return nil, repository.ErrSubmissionNotPending
	}

	sub.Status = domain.SubmissionStatusApproved
	sub.UpdatedAt = time.Now()

	now := time.Now()
	winner := award.DeveloperID
	bug.Status = domain.BugStatusClosed
	bug.Winner = &winner
	bug.ClosedAt = &now
	bug.UpdatedAt = now

	m.users.byID[award.DeveloperID].Balance += award.Amount
	m.users.byID[award.CompanyID].Balance -= award.Amount

	copied := *bug
	return &copied, nil
}

type memHistoryRepo struct {
	seq     int
	entries []domain.BugHistory
}

func (m *memHistoryRepo) Create(_ context.Context, h *domain.BugHistory) error {
	m.seq++
	h.ID = fmt.Sprintf("hist-%d", m.seq)
	h.CreatedAt = time.Now()
	m.entries = append(m.entries, *h)
	return nil
}

func (m *memHistoryRepo) ListByBug(_ context.Context, bugID string) ([]domain.BugHistory, error) {
	var result []domain.BugHistory
	for _, entry := range m.entries {
		if entry.BugID == bugID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeCache struct {
	items       []domain.BugWithPoster
	populated   bool
	sets        int
	hits        int
	invalidated int
}

func (f *fakeCache) Get(context.Context) ([]domain.BugWithPoster, bool) {
	if !f.populated {
		return nil, false
	}
	f.hits++
	return f.items, true
}

func (f *fakeCache) Set(_ context.Context, items []domain.BugWithPoster) {
	f.items = items
	f.populated = true
	f.sets++
}

func (f *fakeCache) Invalidate(context.Context) {
	f.items = nil
	f.populated = false
	f.invalidated++
}

// fixture bundles the fakes with wired services.
type fixture struct {
	users      *memUserRepo
	bugs       *memBugRepo
	subs       *memSubmissionRepo
	ledger     *memLedgerRepo
	history    *memHistoryRepo
	cache      *fakeCache
	bugService *BugService
	subService *SubmissionService
	ledgerSvc  *LedgerService
}

func newFixture() *fixture {
	users := newMemUserRepo()
	bugs := newMemBugRepo(users)
	subs := newMemSubmissionRepo(users)
	ledger := &memLedgerRepo{users: users, bugs: bugs, subs: subs}
	history := &memHistoryRepo{}
	cache := &fakeCache{}

	return &fixture{
		users:   users,
		bugs:    bugs,
		subs:    subs,
		ledger:  ledger,
		history: history,
		cache:   cache,
		bugService: NewBugService(BugDependencies{
			BugRepo:     bugs,
			UserRepo:    users,
			HistoryRepo: history,
			Cache:       cache,
		}),
		subService: NewSubmissionService(SubmissionDependencies{
			BugRepo:        bugs,
			SubmissionRepo: subs,
			LedgerRepo:     ledger,
			HistoryRepo:    history,
			Cache:          cache,
		}),
		ledgerSvc: NewLedgerService(users, ledger),
	}
}

func (f *fixture) addUser(name string, role domain.UserRole, balance int64) *domain.User {
	user := &domain.User{
		Name:    name,
		Email:   name + "@example.com",
		Role:    role,
		Balance: balance,
	}
	_ = f.users.Create(context.Background(), user)
	return user
}

func (f *fixture) addBug(companyID string, bounty int64) *domain.Bug {
	bug := &domain.Bug{
		Title:        "heap overflow in parser",
		Description:  "crash on malformed input",
		BountyAmount: bounty,
		Status:       domain.BugStatusOpen,
		PostedBy:     companyID,
	}
	_ = f.bugs.Create(context.Background(), bug)
	return bug
}
