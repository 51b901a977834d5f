package repositories

import (
	"context"
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// DocumentReader defines read operations for legal document data
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindEntryForDocumentVoucher retrieves the entry generated for a
	// (document, voucher type) pair, or ErrNotFound when none exists.
	FindEntryForDocumentVoucher(ctx context.Context, documentID, voucherTypeID string) (*domain.JournalEntry, error)

	// FindEntriesByDocumentID retrieves every entry linked to a document.
	FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.JournalEntry, error)
}

// DocumentWriter defines write operations for document cancellation
type DocumentWriter interface {
	// CancelDocumentCascade atomically locks the document and its linked
	// entries, fails with ErrConflict if any linked entry is POSTED, and
	// otherwise cancels every linked non-posted entry and the document itself
	// with the reason recorded.
	CancelDocumentCascade(ctx context.Context, documentID, reason, userID string, now time.Time) error
}

// DocumentRepositoryFacade combines document repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
