package services

import (
	"context"

	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// CatalogSvcFacade exposes the read-only configuration catalogs the ledger
// screens need: accounts, voucher types and fiscal periods. Mutation of
// these catalogs belongs to the configuration module, not the ledger core.
type CatalogSvcFacade interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListPostableAccounts(ctx context.Context) ([]domain.Account, error)
	ListVoucherTypes(ctx context.Context) ([]domain.VoucherType, error)
	GetFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)
	ListFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
}
