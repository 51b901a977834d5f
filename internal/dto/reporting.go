package dto

import (
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerMovementResponse is one row of the libro mayor.
type LedgerMovementResponse struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LibroMayorResponse is the libro mayor report for one account.
type LibroMayorResponse struct {
	Account        AccountResponse          `json:"account"`
	FromDate       string                   `json:"fromDate"`
	ToDate         string                   `json:"toDate"`
	OpeningBalance decimal.Decimal          `json:"openingBalance"`
	Movements      []LedgerMovementResponse `json:"movements"`
	Totals         struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// TrialBalanceRowResponse is one account row of the balance de comprobación.
type TrialBalanceRowResponse struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	DebtorBalance   decimal.Decimal `json:"debtorBalance"`
	CreditorBalance decimal.Decimal `json:"creditorBalance"`
}

// BalanceComprobacionResponse is the trial balance report response.
type BalanceComprobacionResponse struct {
	FromDate string                    `json:"fromDate"`
	ToDate   string                    `json:"toDate"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		TotalDebit      decimal.Decimal `json:"totalDebit"`
		TotalCredit     decimal.Decimal `json:"totalCredit"`
		DebtorBalance   decimal.Decimal `json:"debtorBalance"`
		CreditorBalance decimal.Decimal `json:"creditorBalance"`
	} `json:"totals"`
	BalanceCheck struct {
		Balanced         bool            `json:"balanced"`
		DebitCreditDiff  decimal.Decimal `json:"debitCreditDiff"`
		DebtorCreditDiff decimal.Decimal `json:"debtorCreditDiff"`
	} `json:"balanceCheck"`
}

// ToLibroMayorResponse converts a domain ledger report to its DTO.
func ToLibroMayorResponse(report *domain.LedgerReport, from, to time.Time) LibroMayorResponse {
	resp := LibroMayorResponse{
		Account:        ToAccountResponse(&report.Account),
		FromDate:       from.Format("2006-01-02"),
		ToDate:         to.Format("2006-01-02"),
		OpeningBalance: report.OpeningBalance,
		Movements:      make([]LedgerMovementResponse, len(report.Movements)),
		ClosingBalance: report.ClosingBalance,
	}
	for i, m := range report.Movements {
		resp.Movements[i] = LedgerMovementResponse{
			EntryID:        m.EntryID,
			EntryNumber:    m.EntryNumber,
			Date:           m.Date.Format("2006-01-02"),
			Description:    m.Description,
			Debit:          m.Debit,
			Credit:         m.Credit,
			RunningBalance: m.RunningBalance,
		}
	}
	resp.Totals.Debit = report.TotalDebit
	resp.Totals.Credit = report.TotalCredit
	return resp
}

// ToBalanceComprobacionResponse converts a domain trial balance to its DTO.
func ToBalanceComprobacionResponse(report *domain.TrialBalanceReport, from, to time.Time) BalanceComprobacionResponse {
	resp := BalanceComprobacionResponse{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		Rows:     make([]TrialBalanceRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:       row.AccountID,
			AccountCode:     row.AccountCode,
			AccountName:     row.AccountName,
			TotalDebit:      row.TotalDebit,
			TotalCredit:     row.TotalCredit,
			DebtorBalance:   row.DebtorBalance,
			CreditorBalance: row.CreditorBalance,
		}
	}
	resp.Totals.TotalDebit = report.Totals.TotalDebit
	resp.Totals.TotalCredit = report.Totals.TotalCredit
	resp.Totals.DebtorBalance = report.Totals.DebtorBalance
	resp.Totals.CreditorBalance = report.Totals.CreditorBalance
	resp.BalanceCheck.Balanced = report.BalanceCheck.Balanced
	resp.BalanceCheck.DebitCreditDiff = report.BalanceCheck.DebitCreditDiff
	resp.BalanceCheck.DebtorCreditDiff = report.BalanceCheck.DebtorCreditDiff
	return resp
}
