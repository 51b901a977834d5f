package services

import (
	"context"
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// ReportingSvcFacade computes account balances and the trial balance from
// posted entries. Reads never expose draft or cancelled data.
type ReportingSvcFacade interface {
	// GetLibroMayor returns the account's ledger over the range: opening
	// balance, ordered movements with running balances, and closing balance.
	GetLibroMayor(ctx context.Context, accountID string, from, to time.Time, fiscalPeriodID *string) (*domain.LedgerReport, error)

	// GetBalanceComprobacion aggregates all postable accounts over the range
	// into a trial balance with its correctness check.
	GetBalanceComprobacion(ctx context.Context, from, to time.Time, fiscalPeriodID *string, includeZeroBalances bool) (*domain.TrialBalanceReport, error)
}
