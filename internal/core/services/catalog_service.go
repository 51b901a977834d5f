package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
)

// catalogService exposes the read-only configuration catalogs.
type catalogService struct {
	BaseService
	accountRepo      portsrepo.AccountReader
	voucherTypeRepo  portsrepo.VoucherTypeReader
	fiscalPeriodRepo portsrepo.FiscalPeriodReader
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	accountRepo portsrepo.AccountReader,
	voucherTypeRepo portsrepo.VoucherTypeReader,
	fiscalPeriodRepo portsrepo.FiscalPeriodReader,
) portssvc.CatalogSvcFacade {
	return &catalogService{
		accountRepo:      accountRepo,
		voucherTypeRepo:  voucherTypeRepo,
		fiscalPeriodRepo: fiscalPeriodRepo,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *catalogService) ListPostableAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListPostableAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postable accounts")
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}
	return accounts, nil
}

func (s *catalogService) ListVoucherTypes(ctx context.Context) ([]domain.VoucherType, error) {
	types, err := s.voucherTypeRepo.ListVoucherTypes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list voucher types")
		return nil, fmt.Errorf("failed to list voucher types: %w", err)
	}
	return types, nil
}

func (s *catalogService) GetFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalPeriodRepo.FindFiscalPeriodByID(ctx, fiscalPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, fiscalPeriodID)
		}
		return nil, fmt.Errorf("failed to fetch fiscal period %s: %w", fiscalPeriodID, err)
	}
	return period, nil
}

func (s *catalogService) ListFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	periods, err := s.fiscalPeriodRepo.ListFiscalPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods")
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}
