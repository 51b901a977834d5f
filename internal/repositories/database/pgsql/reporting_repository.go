package pgsql

import (
	"context"
	"database/sql"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// postedFilter selects the entries that count toward balances: posted
// originals only. Reversing mirrors are excluded here because their original
// already flipped to REVERSED; counting the mirror on top of removing the
// original would subtract the movement twice.
const postedFilter = `e.status = 'POSTED' AND e.original_entry_id IS NULL`

// PgxReportingRepository runs the aggregation queries behind the libro mayor
// and the balance de comprobación.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool DBPool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetOpeningSums returns the debit and credit totals of the account's posted
// lines dated strictly before the given date.
func (r *PgxReportingRepository) GetOpeningSums(ctx context.Context, accountID string, before time.Time, fiscalPeriodID *string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.entry_date < $2
		  AND ($3::text IS NULL OR e.fiscal_period_id = $3)
		  AND ` + postedFilter + `;
	`
	var totalDebit, totalCredit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, before, fiscalPeriodID).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to compute opening sums for account "+accountID, err)
	}
	return totalDebit, totalCredit, nil
}

// GetLedgerMovements returns the account's posted lines within the range,
// ordered by (entry_date ASC, entry_number ASC, order_number ASC). Running
// balances are filled in by the service.
func (r *PgxReportingRepository) GetLedgerMovements(ctx context.Context, accountID string, from, to time.Time, fiscalPeriodID *string) ([]domain.LedgerMovement, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.voucher_type_id, e.entry_date,
		       l.description, l.debit, l.credit, l.third_party_id
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.entry_date >= $2
		  AND e.entry_date <= $3
		  AND ($4::text IS NULL OR e.fiscal_period_id = $4)
		  AND ` + postedFilter + `
		ORDER BY e.entry_date ASC, e.entry_number ASC, l.order_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to, fiscalPeriodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger movements for account "+accountID, err)
	}
	defer rows.Close()

	var movements []domain.LedgerMovement
	for rows.Next() {
		var mv domain.LedgerMovement
		var thirdPartyID sql.NullString
		if err := rows.Scan(
			&mv.EntryID,
			&mv.EntryNumber,
			&mv.VoucherTypeID,
			&mv.Date,
			&mv.Description,
			&mv.Debit,
			&mv.Credit,
			&thirdPartyID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger movement row", err)
		}
		if thirdPartyID.Valid {
			mv.ThirdPartyID = &thirdPartyID.String
		}
		movements = append(movements, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger movement rows", err)
	}
	return movements, nil
}

// GetTrialBalanceData returns per-account debit/credit aggregates over the
// range for every account with posted movements, ordered by account code.
// The saldo deudor / saldo acreedor split is computed by the service.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, from, to time.Time, fiscalPeriodID *string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.normal_balance,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.entry_date >= $1
		  AND e.entry_date <= $2
		  AND ($3::text IS NULL OR e.fiscal_period_id = $3)
		  AND ` + postedFilter + `
		GROUP BY a.account_id, a.code, a.name, a.normal_balance
		ORDER BY a.code ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, fiscalPeriodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.NormalBalance,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate trial balance rows", err)
	}
	return result, nil
}
