package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxDocumentRepository persists legal documents and runs the cancellation
// cascade.
type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document data.
func newPgxDocumentRepository(pool DBPool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, document_type_id, document_number, status, document_date,
	reference, total, currency_id, exchange_rate, fiscal_period_id, cancel_reason,
	created_at, created_by, last_updated_at, last_updated_by`

// FindDocumentByID retrieves a document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT` + documentColumns + `
		FROM documents
		WHERE document_id = $1;
	`
	var doc domain.Document
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&doc.DocumentID,
		&doc.DocumentTypeID,
		&doc.DocumentNumber,
		&doc.Status,
		&doc.Date,
		&doc.Reference,
		&doc.Total,
		&doc.CurrencyID,
		&doc.ExchangeRate,
		&doc.FiscalPeriodID,
		&doc.CancelReason,
		&doc.CreatedAt,
		&doc.CreatedBy,
		&doc.LastUpdatedAt,
		&doc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}
	return &doc, nil
}

// FindEntryForDocumentVoucher retrieves the entry generated for a
// (document, voucher type) pair, or ErrNotFound when none exists. Reversing
// mirrors are ignored; they carry the document link of their original.
func (r *PgxDocumentRepository) FindEntryForDocumentVoucher(ctx context.Context, documentID, voucherTypeID string) (*domain.JournalEntry, error) {
	query := `SELECT` + entryColumns + `
		FROM journal_entries
		WHERE document_id = $1 AND voucher_type_id = $2 AND original_entry_id IS NULL;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, documentID, voucherTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry for document "+documentID, err)
	}
	return entry, nil
}

// FindEntriesByDocumentID retrieves every entry linked to a document.
func (r *PgxDocumentRepository) FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.JournalEntry, error) {
	query := `SELECT` + entryColumns + `
		FROM journal_entries
		WHERE document_id = $1
		ORDER BY entry_date ASC, entry_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for document "+documentID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate entry rows", err)
	}
	return entries, nil
}

// CancelDocumentCascade cancels a document and its linked DRAFT entries in
// one transaction. Row locks on the document and its entries make the
// posted-entry check authoritative: a concurrent post either lands before the
// lock (and blocks the cascade) or waits and then fails its DRAFT check.
// Reversing mirrors stay POSTED even though they carry the document link;
// they and their REVERSED originals net to zero and never block the cascade.
func (r *PgxDocumentRepository) CancelDocumentCascade(ctx context.Context, documentID, reason, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var docStatus domain.DocumentStatus
	lockDocQuery := `SELECT status FROM documents WHERE document_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, lockDocQuery, documentID).Scan(&docStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock document "+documentID, err)
	}
	if docStatus == domain.DocumentCancelled {
		return fmt.Errorf("%w: document %s is already cancelled", apperrors.ErrInvalidState, documentID)
	}

	lockEntriesQuery := `
		SELECT entry_id, entry_number, status, original_entry_id
		FROM journal_entries
		WHERE document_id = $1
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockEntriesQuery, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock entries for document "+documentID, err)
	}

	type lockedEntry struct {
		entryID     string
		entryNumber string
		status      domain.EntryStatus
		isMirror    bool
	}
	var locked []lockedEntry
	for rows.Next() {
		var le lockedEntry
		var originalEntryID sql.NullString
		if err := rows.Scan(&le.entryID, &le.entryNumber, &le.status, &originalEntryID); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked entry row", err)
		}
		le.isMirror = originalEntryID.Valid
		locked = append(locked, le)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to iterate locked entry rows", err)
	}

	for _, le := range locked {
		if le.status == domain.EntryPosted && !le.isMirror {
			return fmt.Errorf("%w: entry %s is POSTED, reverse it before cancelling document %s",
				apperrors.ErrConflict, le.entryNumber, documentID)
		}
	}

	cancelEntriesQuery := `
		UPDATE journal_entries
		SET status = $2,
		    description = description || $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE document_id = $1 AND status = $6;
	`
	note := fmt.Sprintf(" | Anulado: %s", reason)
	if _, err := tx.Exec(ctx, cancelEntriesQuery, documentID, domain.EntryCancelled, note, now, userID, domain.EntryDraft); err != nil {
		return apperrors.NewAppError(500, "failed to cancel entries for document "+documentID, err)
	}

	cancelDocQuery := `
		UPDATE documents
		SET status = $2, cancel_reason = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1;
	`
	if _, err := tx.Exec(ctx, cancelDocQuery, documentID, domain.DocumentCancelled, reason, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to cancel document "+documentID, err)
	}

	return r.Commit(ctx, tx)
}
