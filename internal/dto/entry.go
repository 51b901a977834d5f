package dto

import (
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit/credit line of a new entry.
type CreateEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ThirdPartyID *string         `json:"thirdPartyID"`
}

// CreateEntryRequest defines the payload for creating a journal entry.
// EntryNumber is optional; when absent the next number for the voucher type
// is allocated.
type CreateEntryRequest struct {
	VoucherTypeID  string                   `json:"voucherTypeID" binding:"required"`
	EntryNumber    string                   `json:"entryNumber"`
	Date           time.Time                `json:"date" binding:"required"`
	Reference      string                   `json:"reference"`
	Description    string                   `json:"description" binding:"required"`
	CurrencyID     string                   `json:"currencyID" binding:"required"`
	ExchangeRate   decimal.Decimal          `json:"exchangeRate"`
	FiscalPeriodID string                   `json:"fiscalPeriodID" binding:"required"`
	Lines          []CreateEntryLineRequest `json:"lines" binding:"required,min=1,dive"`

	// Optional link back to a source legal document.
	DocumentTypeID *string `json:"documentTypeID"`
	DocumentID     *string `json:"documentID"`
}

// UpdateEntryRequest replaces the header fields and the full line set of a
// draft entry.
type UpdateEntryRequest struct {
	Date           time.Time                `json:"date" binding:"required"`
	Reference      string                   `json:"reference"`
	Description    string                   `json:"description" binding:"required"`
	CurrencyID     string                   `json:"currencyID" binding:"required"`
	ExchangeRate   decimal.Decimal          `json:"exchangeRate"`
	FiscalPeriodID string                   `json:"fiscalPeriodID" binding:"required"`
	Lines          []CreateEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	OrderNumber  int             `json:"orderNumber"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ThirdPartyID *string         `json:"thirdPartyID,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	EntryNumber      string              `json:"entryNumber"`
	VoucherTypeID    string              `json:"voucherTypeID"`
	Date             time.Time           `json:"date"`
	Reference        string              `json:"reference"`
	Description      string              `json:"description"`
	CurrencyID       string              `json:"currencyID"`
	ExchangeRate     decimal.Decimal     `json:"exchangeRate"`
	FiscalPeriodID   string              `json:"fiscalPeriodID"`
	Status           string              `json:"status"`
	TotalDebit       decimal.Decimal     `json:"totalDebit"`
	TotalCredit      decimal.Decimal     `json:"totalCredit"`
	DocumentTypeID   *string             `json:"documentTypeID,omitempty"`
	DocumentID       *string             `json:"documentID,omitempty"`
	OriginalEntryID  *string             `json:"originalEntryID,omitempty"`
	ReversingEntryID *string             `json:"reversingEntryID,omitempty"`
	Lines            []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ListEntriesParams holds the libro diario filters.
type ListEntriesParams struct {
	DateFrom          *time.Time
	DateTo            *time.Time
	Status            *string
	VoucherTypeID     *string
	ThirdPartyID      *string
	FiscalPeriodID    *string
	EntryNumberPrefix *string
	IncludeReversals  bool
	IncludeLines      bool
	Limit             int
	Offset            int
}

// ListEntriesResponse is a page of entries plus the total matching count.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// ToEntryLineResponse converts a domain.EntryLine to EntryLineResponse.
func ToEntryLineResponse(line *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       line.LineID,
		OrderNumber:  line.OrderNumber,
		AccountID:    line.AccountID,
		Description:  line.Description,
		Debit:        line.Debit,
		Credit:       line.Credit,
		ThirdPartyID: line.ThirdPartyID,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		VoucherTypeID:    e.VoucherTypeID,
		Date:             e.Date,
		Reference:        e.Reference,
		Description:      e.Description,
		CurrencyID:       e.CurrencyID,
		ExchangeRate:     e.ExchangeRate,
		FiscalPeriodID:   e.FiscalPeriodID,
		Status:           string(e.Status),
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		DocumentTypeID:   e.DocumentTypeID,
		DocumentID:       e.DocumentID,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}
