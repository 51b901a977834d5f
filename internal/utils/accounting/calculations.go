package accounting

import (
	"fmt"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountTolerance is the monetary rounding tolerance. All amounts carry a
// scale of 2; equality checks absorb up to one cent of rounding noise.
var AmountTolerance = decimal.New(1, -2) // 0.01

// SignedDelta returns the movement a line contributes to an account's
// balance under the normal-balance convention:
// delta = debit - credit; debit-normal accounts accumulate +delta,
// credit-normal accounts accumulate -delta.
func SignedDelta(line domain.EntryLine, normalBalance domain.NormalBalance) (decimal.Decimal, error) {
	delta := line.Debit.Sub(line.Credit)
	switch normalBalance {
	case domain.DebitNormal:
		return delta, nil
	case domain.CreditNormal:
		return delta.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown normal balance '%s' for account ID %s", normalBalance, line.AccountID)
	}
}

// ValidateLine checks the per-line invariant: exactly one of debit/credit is
// positive, and neither side is negative.
func ValidateLine(line domain.EntryLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.OrderNumber)
	}
	if line.Debit.IsPositive() && line.Credit.IsPositive() {
		return fmt.Errorf("%w: line %d carries both a debit and a credit", apperrors.ErrValidation, line.OrderNumber)
	}
	if line.Debit.IsZero() && line.Credit.IsZero() {
		return fmt.Errorf("%w: line %d has neither a debit nor a credit", apperrors.ErrValidation, line.OrderNumber)
	}
	if line.AccountID == "" {
		return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, line.OrderNumber)
	}
	return nil
}

// SumLines returns the debit and credit totals of a line set.
func SumLines(lines []domain.EntryLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance checks the double-entry invariant for a full line set:
// lines are non-empty, each line is well formed, and the debit and credit
// totals agree within AmountTolerance.
func ValidateEntryBalance(lines []domain.EntryLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: entry must have at least one line", apperrors.ErrValidation)
	}
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}
	totalDebit, totalCredit := SumLines(lines)
	if !WithinTolerance(totalDebit, totalCredit) {
		return fmt.Errorf("%w: entry is unbalanced, debits %s vs credits %s",
			apperrors.ErrValidation, totalDebit.String(), totalCredit.String())
	}
	return nil
}

// WithinTolerance reports whether two amounts agree within AmountTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(AmountTolerance)
}
