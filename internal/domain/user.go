package domain

import "time"

// UserRole distinguishes companies that post bounties from developers who claim them.
type UserRole string

const (
	RoleCompany   UserRole = "company"
	RoleDeveloper UserRole = "developer"
)

// Valid reports whether the role is one of the two supported values.
func (r UserRole) Valid() bool {
	return r == RoleCompany || r == RoleDeveloper
}

// User is the domain model for marketplace accounts. Balance is held in
// integer currency units; it is mutated only by deposits and bounty transfers.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Balance      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
