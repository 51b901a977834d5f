package dto

import (
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateVoucherRequest asks for a journal entry to be generated from an
// approved document.
type GenerateVoucherRequest struct {
	VoucherTypeID string `json:"voucherTypeID" binding:"required"`
}

// CancelDocumentRequest cancels a document and cascades to its vouchers.
type CancelDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DocumentResponse defines the data returned for a legal document.
type DocumentResponse struct {
	DocumentID     string          `json:"documentID"`
	DocumentTypeID string          `json:"documentTypeID"`
	DocumentNumber string          `json:"documentNumber"`
	Status         string          `json:"status"`
	Date           time.Time       `json:"date"`
	Reference      string          `json:"reference"`
	Total          decimal.Decimal `json:"total"`
	CurrencyID     string          `json:"currencyID"`
	FiscalPeriodID string          `json:"fiscalPeriodID"`
	CancelReason   string          `json:"cancelReason,omitempty"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:     d.DocumentID,
		DocumentTypeID: d.DocumentTypeID,
		DocumentNumber: d.DocumentNumber,
		Status:         string(d.Status),
		Date:           d.Date,
		Reference:      d.Reference,
		Total:          d.Total,
		CurrencyID:     d.CurrencyID,
		FiscalPeriodID: d.FiscalPeriodID,
		CancelReason:   d.CancelReason,
	}
}
