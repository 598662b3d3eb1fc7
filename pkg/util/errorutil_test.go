package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewInvalidState("bug is already closed", nil)

	domainErr := ToDomainError(err)
	require.Equal(t, "INVALID_STATE", domainErr.Code)
	require.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	err := fmt.Errorf("loading bug: %w", NewNotFound("bug", nil))

	domainErr := ToDomainError(err)
	require.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", domainErr.Code)
	require.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	require.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestInsufficientFundsDetails(t *testing.T) {
	domainErr := ToDomainError(NewInsufficientFunds(1000, 3000))
	require.Equal(t, "INSUFFICIENT_FUNDS", domainErr.Code)
	require.Equal(t, int64(1000), domainErr.Details["balance"])
	require.Equal(t, int64(3000), domainErr.Details["required"])
}
