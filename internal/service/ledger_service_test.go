package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bountyboard/bounty-service/internal/domain"
)

func TestDepositCreditsBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dev := f.addUser("dev", domain.RoleDeveloper, 100)

	balance, err := f.ledgerSvc.Deposit(ctx, dev.ID, 400)
	require.NoError(t, err)
	require.Equal(t, int64(500), balance)

	balance, err = f.ledgerSvc.Deposit(ctx, dev.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(501), balance)
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dev := f.addUser("dev", domain.RoleDeveloper, 100)

	for _, amount := range []int64{0, -5} {
		_, err := f.ledgerSvc.Deposit(ctx, dev.ID, amount)
		requireErrorCode(t, err, "INVALID_AMOUNT")
	}

	stored, err := f.users.GetByID(ctx, dev.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), stored.Balance, "failed deposits must not touch the balance")
}

func TestDepositUnknownAccount(t *testing.T) {
	f := newFixture()

	_, err := f.ledgerSvc.Deposit(context.Background(), "user-404", 100)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestProfileReturnsBalanceAndRole(t *testing.T) {
	f := newFixture()
	company := f.addUser("acme", domain.RoleCompany, 7500)

	profile, err := f.ledgerSvc.Profile(context.Background(), company.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCompany, profile.Role)
	require.Equal(t, int64(7500), profile.Balance)
}

func TestProfileUnknownAccount(t *testing.T) {
	f := newFixture()

	_, err := f.ledgerSvc.Profile(context.Background(), "user-404")
	requireErrorCode(t, err, "NOT_FOUND")
}
