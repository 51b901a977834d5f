package services

import (
	"fmt"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/TyroGames/api-sub001/internal/dto"
)

// TwoLineBuilder returns a LineBuilder that books the document total as one
// debit and one credit line. Most document types (receipts, disbursements,
// simple invoices) reduce to this shape; composite types register their own
// builder instead.
func TwoLineBuilder(debitAccountID, creditAccountID string, postImmediately bool) LineBuilder {
	return func(doc domain.Document) ([]dto.CreateEntryLineRequest, bool, error) {
		if doc.Total.IsZero() || doc.Total.IsNegative() {
			return nil, false, fmt.Errorf("%w: document %s total must be positive, got %s",
				apperrors.ErrValidation, doc.DocumentNumber, doc.Total.String())
		}
		lines := []dto.CreateEntryLineRequest{
			{
				AccountID:   debitAccountID,
				Description: doc.Reference,
				Debit:       doc.Total,
			},
			{
				AccountID:   creditAccountID,
				Description: doc.Reference,
				Credit:      doc.Total,
			},
		}
		return lines, postImmediately, nil
	}
}
