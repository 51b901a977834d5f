package repositories

import (
	"context"
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only aggregation queries backing the
// libro mayor and the balance de comprobación. Only POSTED entries that are
// not reversing mirrors are ever considered.
type ReportingRepository interface {
	// GetOpeningSums returns the debit and credit totals of an account's
	// posted lines dated strictly before the given date.
	GetOpeningSums(ctx context.Context, accountID string, before time.Time, fiscalPeriodID *string) (decimal.Decimal, decimal.Decimal, error)

	// GetLedgerMovements returns the account's posted lines within the range,
	// ordered by (date ASC, entry_number ASC, order_number ASC). Running
	// balances are left zero for the caller to fill.
	GetLedgerMovements(ctx context.Context, accountID string, from, to time.Time, fiscalPeriodID *string) ([]domain.LedgerMovement, error)

	// GetTrialBalanceData returns per-account debit/credit aggregates over the
	// range for every postable, active account with movements.
	GetTrialBalanceData(ctx context.Context, from, to time.Time, fiscalPeriodID *string) ([]domain.TrialBalanceRow, error)
}
