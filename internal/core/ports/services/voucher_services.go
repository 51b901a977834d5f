package services

import (
	"context"

	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// VoucherSvcFacade coordinates documents and their derived journal entries.
// It owns both sides of the cancellation cascade so the "no document is
// cancelled while it has a posted entry" invariant lives in one place.
type VoucherSvcFacade interface {
	// GenerateVoucherFromDocument builds and persists the journal entry for an
	// approved document and voucher type. Fails with ErrConflict when an entry
	// already exists for the pair.
	GenerateVoucherFromDocument(ctx context.Context, documentID, voucherTypeID, userID string) (*domain.JournalEntry, error)

	// CancelDocument cancels a document and cascades to its non-posted
	// entries. Fails with ErrConflict when any linked entry is POSTED.
	CancelDocument(ctx context.Context, documentID, reason, userID string) error

	// GetDocumentByID retrieves a document with no entries attached.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}
