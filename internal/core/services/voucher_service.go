package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/dto"
)

// LineBuilder produces the journal lines for a document type. The boolean
// reports whether the generated entry should be posted immediately; builders
// for document types that only stage drafts return false.
type LineBuilder func(doc domain.Document) ([]dto.CreateEntryLineRequest, bool, error)

// voucherService bridges legal documents and their derived journal entries.
type voucherService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	entrySvc     portssvc.EntrySvcFacade
	lineBuilders map[string]LineBuilder
}

// NewVoucherService creates a new voucher service. lineBuilders maps document
// type IDs to the builder that produces that type's journal lines; document
// types without a builder cannot generate vouchers.
func NewVoucherService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	entrySvc portssvc.EntrySvcFacade,
	lineBuilders map[string]LineBuilder,
) portssvc.VoucherSvcFacade {
	if lineBuilders == nil {
		lineBuilders = map[string]LineBuilder{}
	}
	return &voucherService{
		documentRepo: documentRepo,
		entrySvc:     entrySvc,
		lineBuilders: lineBuilders,
	}
}

// Ensure voucherService implements the portssvc.VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// GenerateVoucherFromDocument builds and persists the journal entry derived
// from an approved document. At most one entry may exist per
// (document, voucher type) pair; a second call fails with ErrConflict. The
// database enforces the same guard with a unique index, so concurrent calls
// cannot slip past this check. When the builder flags immediate posting, the
// creation and the post commit as separate transactions: a posting failure
// leaves the committed DRAFT behind, and recovery is posting that entry
// directly rather than regenerating.
// Implements portssvc.VoucherSvcFacade
func (s *voucherService) GenerateVoucherFromDocument(ctx context.Context, documentID, voucherTypeID, userID string) (*domain.JournalEntry, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}
	if doc.Status != domain.DocumentApproved {
		return nil, fmt.Errorf("%w: document %s status is %s, only APPROVED documents can generate vouchers",
			apperrors.ErrInvalidState, doc.DocumentNumber, doc.Status)
	}

	existing, err := s.documentRepo.FindEntryForDocumentVoucher(ctx, documentID, voucherTypeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing voucher: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: document %s already has entry %s for this voucher type",
			apperrors.ErrConflict, doc.DocumentNumber, existing.EntryNumber)
	}

	builder, found := s.lineBuilders[doc.DocumentTypeID]
	if !found {
		return nil, fmt.Errorf("%w: no voucher rule for document type %s",
			apperrors.ErrValidation, doc.DocumentTypeID)
	}
	lines, postImmediately, err := builder(*doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build lines for document %s: %w", documentID, err)
	}

	req := dto.CreateEntryRequest{
		VoucherTypeID:  voucherTypeID,
		Date:           doc.Date,
		Reference:      doc.DocumentNumber,
		Description:    fmt.Sprintf("Voucher for document %s", doc.DocumentNumber),
		CurrencyID:     doc.CurrencyID,
		ExchangeRate:   doc.ExchangeRate,
		FiscalPeriodID: doc.FiscalPeriodID,
		Lines:          lines,
		DocumentTypeID: &doc.DocumentTypeID,
		DocumentID:     &doc.DocumentID,
	}

	entry, err := s.entrySvc.CreateEntry(ctx, req, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to create voucher entry",
			slog.String("document_id", documentID),
			slog.String("voucher_type_id", voucherTypeID))
		return nil, err
	}

	if postImmediately {
		posted, err := s.entrySvc.PostEntry(ctx, entry.EntryID, userID)
		if err != nil {
			// The draft already committed; regenerating would hit the
			// duplicate guard, so recovery is posting the named entry.
			return nil, fmt.Errorf("voucher entry %s for document %s created but posting failed, post it directly to recover: %w",
				entry.EntryNumber, doc.DocumentNumber, err)
		}
		entry = posted
	}

	s.LogInfo(ctx, "Voucher generated",
		slog.String("document_id", documentID),
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// CancelDocument cancels a document and cascades to its linked entries. Any
// POSTED entry blocks the whole operation; the caller must reverse it first.
// Reversing mirrors are exempt: a REVERSED original and its POSTED mirror net
// to zero, so they stay in history and never block the cancellation.
// The cascade runs in one repository transaction, so either the document and
// every cancellable entry change together or nothing changes.
// Implements portssvc.VoucherSvcFacade
func (s *voucherService) CancelDocument(ctx context.Context, documentID, reason, userID string) error {
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}
	if doc.Status == domain.DocumentCancelled {
		return fmt.Errorf("%w: document %s is already cancelled",
			apperrors.ErrInvalidState, doc.DocumentNumber)
	}

	entries, err := s.documentRepo.FindEntriesByDocumentID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch entries for document %s: %w", documentID, err)
	}
	for _, entry := range entries {
		if entry.Status == domain.EntryPosted && entry.OriginalEntryID == nil {
			return fmt.Errorf("%w: entry %s is POSTED, reverse it before cancelling document %s",
				apperrors.ErrConflict, entry.EntryNumber, doc.DocumentNumber)
		}
	}

	now := time.Now().UTC()
	// The repository re-checks entry statuses under row locks before writing.
	if err := s.documentRepo.CancelDocumentCascade(ctx, documentID, reason, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to cancel document", slog.String("document_id", documentID))
		return err
	}

	s.LogInfo(ctx, "Document cancelled",
		slog.String("document_id", documentID),
		slog.Int("linked_entries", len(entries)))
	return nil
}

// GetDocumentByID retrieves a document.
// Implements portssvc.VoucherSvcFacade
func (s *voucherService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}
	return doc, nil
}
