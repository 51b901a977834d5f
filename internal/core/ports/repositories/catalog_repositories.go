package repositories

import (
	"context"

	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// AccountReader is the chart-of-accounts gateway. Account metadata is owned
// by the configuration module; the ledger core only reads it.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListPostableAccounts retrieves every active account that allows entries.
	ListPostableAccounts(ctx context.Context) ([]domain.Account, error)
}

// FiscalPeriodReader is the fiscal-period gateway, consumed to gate postings.
type FiscalPeriodReader interface {
	// FindFiscalPeriodByID retrieves a fiscal period by its unique identifier.
	FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// ListFiscalPeriods retrieves all fiscal periods.
	ListFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
}
