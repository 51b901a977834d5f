package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/utils/accounting"
)

// reportingService computes the libro mayor and the balance de comprobación
// from posted entries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountReader,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetLibroMayor returns the account's ledger over the range: the opening
// balance from movements before the range, the in-range movements with
// running balances, and the closing balance.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetLibroMayor(ctx context.Context, accountID string, from, to time.Time, fiscalPeriodID *string) (*domain.LedgerReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' date %s precedes 'from' date %s",
			apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	openingDebit, openingCredit, err := s.reportingRepo.GetOpeningSums(ctx, accountID, from, fiscalPeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute opening balance for account %s: %w", accountID, err)
	}
	openingBalance, err := accounting.SignedDelta(domain.EntryLine{
		AccountID: accountID,
		Debit:     openingDebit,
		Credit:    openingCredit,
	}, account.NormalBalance)
	if err != nil {
		return nil, err
	}

	movements, err := s.reportingRepo.GetLedgerMovements(ctx, accountID, from, to, fiscalPeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger movements", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch ledger movements for account %s: %w", accountID, err)
	}

	running := openingBalance
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i := range movements {
		delta, err := accounting.SignedDelta(domain.EntryLine{
			AccountID: accountID,
			Debit:     movements[i].Debit,
			Credit:    movements[i].Credit,
		}, account.NormalBalance)
		if err != nil {
			return nil, err
		}
		running = running.Add(delta)
		movements[i].RunningBalance = running
		totalDebit = totalDebit.Add(movements[i].Debit)
		totalCredit = totalCredit.Add(movements[i].Credit)
	}

	return &domain.LedgerReport{
		Account:        *account,
		OpeningBalance: openingBalance,
		Movements:      movements,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		ClosingBalance: running,
	}, nil
}

// GetBalanceComprobacion aggregates all accounts with movements over the range
// into a trial balance. Each account's net balance lands in exactly one of the
// saldo deudor / saldo acreedor columns according to its sign under the
// normal-balance convention. When includeZeroBalances is set, postable
// accounts without movements are merged in with zero rows.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetBalanceComprobacion(ctx context.Context, from, to time.Time, fiscalPeriodID *string, includeZeroBalances bool) (*domain.TrialBalanceReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' date %s precedes 'from' date %s",
			apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, from, to, fiscalPeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance data")
		return nil, fmt.Errorf("failed to fetch trial balance data: %w", err)
	}

	for i := range rows {
		balance, err := accounting.SignedDelta(domain.EntryLine{
			AccountID: rows[i].AccountID,
			Debit:     rows[i].TotalDebit,
			Credit:    rows[i].TotalCredit,
		}, rows[i].NormalBalance)
		if err != nil {
			return nil, err
		}
		rows[i].DebtorBalance = decimal.Zero
		rows[i].CreditorBalance = decimal.Zero
		switch {
		case balance.IsPositive() && rows[i].NormalBalance == domain.DebitNormal:
			rows[i].DebtorBalance = balance
		case balance.IsPositive() && rows[i].NormalBalance == domain.CreditNormal:
			rows[i].CreditorBalance = balance
		case balance.IsNegative() && rows[i].NormalBalance == domain.DebitNormal:
			// A debit-normal account driven negative sits on the creditor side.
			rows[i].CreditorBalance = balance.Neg()
		case balance.IsNegative() && rows[i].NormalBalance == domain.CreditNormal:
			rows[i].DebtorBalance = balance.Neg()
		}
	}

	if includeZeroBalances {
		rows, err = s.mergeZeroBalanceAccounts(ctx, rows)
		if err != nil {
			return nil, err
		}
	}

	totals := domain.TrialBalanceTotals{
		TotalDebit:      decimal.Zero,
		TotalCredit:     decimal.Zero,
		DebtorBalance:   decimal.Zero,
		CreditorBalance: decimal.Zero,
	}
	for _, row := range rows {
		totals.TotalDebit = totals.TotalDebit.Add(row.TotalDebit)
		totals.TotalCredit = totals.TotalCredit.Add(row.TotalCredit)
		totals.DebtorBalance = totals.DebtorBalance.Add(row.DebtorBalance)
		totals.CreditorBalance = totals.CreditorBalance.Add(row.CreditorBalance)
	}

	debitCreditDiff := totals.TotalDebit.Sub(totals.TotalCredit)
	debtorCreditDiff := totals.DebtorBalance.Sub(totals.CreditorBalance)
	check := domain.BalanceCheck{
		Balanced: accounting.WithinTolerance(totals.TotalDebit, totals.TotalCredit) &&
			accounting.WithinTolerance(totals.DebtorBalance, totals.CreditorBalance),
		DebitCreditDiff:  debitCreditDiff,
		DebtorCreditDiff: debtorCreditDiff,
	}
	if !check.Balanced {
		s.LogWarn(ctx, "Trial balance is out of balance",
			slog.String("debit_credit_diff", debitCreditDiff.String()),
			slog.String("debtor_creditor_diff", debtorCreditDiff.String()))
	}

	return &domain.TrialBalanceReport{
		Rows:         rows,
		Totals:       totals,
		BalanceCheck: check,
	}, nil
}

// mergeZeroBalanceAccounts appends zero rows for postable accounts that had no
// movements in the range, keeping the whole set ordered by account code.
func (s *reportingService) mergeZeroBalanceAccounts(ctx context.Context, rows []domain.TrialBalanceRow) ([]domain.TrialBalanceRow, error) {
	accounts, err := s.accountRepo.ListPostableAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postable accounts")
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}

	present := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		present[row.AccountID] = struct{}{}
	}
	for _, acc := range accounts {
		if _, found := present[acc.AccountID]; found {
			continue
		}
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:       acc.AccountID,
			AccountCode:     acc.Code,
			AccountName:     acc.Name,
			NormalBalance:   acc.NormalBalance,
			TotalDebit:      decimal.Zero,
			TotalCredit:     decimal.Zero,
			DebtorBalance:   decimal.Zero,
			CreditorBalance: decimal.Zero,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}
