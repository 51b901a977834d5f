package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus indicates the state of a legal document.
type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "DRAFT"
	DocumentApproved  DocumentStatus = "APPROVED"
	DocumentCancelled DocumentStatus = "CANCELLED"
)

// Document is a source legal document (contract, disbursement, receipt)
// that drives derived journal entries. At most one entry exists per
// (documentID, voucherTypeID) pair.
type Document struct {
	DocumentID     string          `json:"documentID"`
	DocumentTypeID string          `json:"documentTypeID"`
	DocumentNumber string          `json:"documentNumber"`
	Status         DocumentStatus  `json:"status"`
	Date           time.Time       `json:"date"`
	Reference      string          `json:"reference"`
	Total          decimal.Decimal `json:"total"`
	CurrencyID     string          `json:"currencyID"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	FiscalPeriodID string          `json:"fiscalPeriodID"`
	CancelReason   string          `json:"cancelReason,omitempty"`
	AuditFields
}
