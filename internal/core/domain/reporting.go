package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerMovement is one posted line in an account's libro mayor, enriched
// with its entry header fields and the running balance after the movement.
type LedgerMovement struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	VoucherTypeID  string          `json:"voucherTypeID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	ThirdPartyID   *string         `json:"thirdPartyID,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerReport is the libro mayor for one account over a date range.
type LedgerReport struct {
	Account        Account          `json:"account"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	Movements      []LedgerMovement `json:"movements"`
	TotalDebit     decimal.Decimal  `json:"totalDebit"`
	TotalCredit    decimal.Decimal  `json:"totalCredit"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
}

// TrialBalanceRow is one account's aggregate in the balance de comprobación.
type TrialBalanceRow struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	NormalBalance   NormalBalance   `json:"normalBalance"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	DebtorBalance   decimal.Decimal `json:"debtorBalance"`   // saldo deudor
	CreditorBalance decimal.Decimal `json:"creditorBalance"` // saldo acreedor
}

// TrialBalanceTotals sums every column across accounts.
type TrialBalanceTotals struct {
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	DebtorBalance   decimal.Decimal `json:"debtorBalance"`
	CreditorBalance decimal.Decimal `json:"creditorBalance"`
}

// BalanceCheck is the correctness verdict of a trial balance. Both the
// debit/credit equality and the deudor/acreedor equality must hold; a buggy
// sign split can leave a residual even when debits equal credits overall.
type BalanceCheck struct {
	Balanced         bool            `json:"balanced"`
	DebitCreditDiff  decimal.Decimal `json:"debitCreditDiff"`
	DebtorCreditDiff decimal.Decimal `json:"debtorCreditDiff"`
}

// TrialBalanceReport is the balance de comprobación over a date range.
type TrialBalanceReport struct {
	Rows         []TrialBalanceRow  `json:"rows"`
	Totals       TrialBalanceTotals `json:"totals"`
	BalanceCheck BalanceCheck       `json:"balanceCheck"`
}
