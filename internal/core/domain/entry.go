package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryReversed  EntryStatus = "REVERSED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// entryTransitions is the explicit state machine for journal entries.
// DRAFT -> POSTED -> REVERSED; DRAFT -> CANCELLED (document cascade).
// Deletion is only permitted in DRAFT and removes the entry outright.
// No transition re-enters DRAFT.
var entryTransitions = map[EntryStatus]map[EntryStatus]bool{
	EntryDraft: {
		EntryPosted:    true,
		EntryCancelled: true,
	},
	EntryPosted: {
		EntryReversed: true,
	},
}

// CanTransitionTo reports whether the transition is allowed by the table.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	return entryTransitions[s][next]
}

// IsValid reports whether the status is one of the known values.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryDraft, EntryPosted, EntryReversed, EntryCancelled:
		return true
	}
	return false
}

// JournalEntry ("comprobante contable") is a balanced group of debit/credit
// lines posted on one date. TotalDebit/TotalCredit are derived projections of
// the line set, recomputed on every line change and never hand-edited.
type JournalEntry struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"` // Unique per voucher type, sequential
	VoucherTypeID  string          `json:"voucherTypeID"`
	Date           time.Time       `json:"date"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	CurrencyID     string          `json:"currencyID"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	FiscalPeriodID string          `json:"fiscalPeriodID"`
	Status         EntryStatus     `json:"status"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`

	// Optional link to the source legal document this entry was generated from.
	DocumentTypeID *string `json:"documentTypeID,omitempty"`
	DocumentID     *string `json:"documentID,omitempty"`

	// Reversal linkage. A reversing entry points at its original via
	// OriginalEntryID; a reversed original points at its mirror via
	// ReversingEntryID. Both legs stay in history.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`

	Lines []EntryLine `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// EntryLine is one account movement inside a journal entry. Exactly one of
// Debit/Credit is positive; lines cannot outlive their entry.
type EntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	OrderNumber  int             `json:"orderNumber"` // Intra-entry and ledger ordering
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ThirdPartyID *string         `json:"thirdPartyID,omitempty"`
	AuditFields
}

// EntryFilter holds the libro diario query filters.
type EntryFilter struct {
	DateFrom          *time.Time
	DateTo            *time.Time
	Status            *EntryStatus
	VoucherTypeID     *string
	ThirdPartyID      *string
	FiscalPeriodID    *string
	EntryNumberPrefix *string
	IncludeReversals  bool
	Limit             int
	Offset            int
}
