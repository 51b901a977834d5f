package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/TyroGames/api-sub001/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// entryColumns is the header column list shared by every entry SELECT.
const entryColumns = `
	entry_id, entry_number, voucher_type_id, entry_date, reference, description,
	currency_id, exchange_rate, fiscal_period_id, status, total_debit, total_credit,
	document_type_id, document_id, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// lineColumns is the column list shared by every line SELECT.
const lineColumns = `
	line_id, entry_id, order_number, account_id, description, debit, credit,
	third_party_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxEntryRepository persists journal entries and their lines.
type PgxEntryRepository struct {
	BaseRepository
	sequenceRepo portsrepo.SequenceAllocator
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool DBPool, sequenceRepo portsrepo.SequenceAllocator) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequenceRepo:   sequenceRepo,
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// SaveEntry persists a new entry header and its lines in one transaction.
// When entry.EntryNumber is empty, the next number for the voucher type is
// allocated under the row lock taken by the sequence repository; rolling back
// releases the number, so committed sequences stay gap-free.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) // No-op when the transaction commits

	entryNumber := entry.EntryNumber
	if entryNumber == "" {
		entryNumber, err = r.sequenceRepo.NextEntryNumber(ctx, tx, entry.VoucherTypeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: voucher type %s", apperrors.ErrNotFound, entry.VoucherTypeID)
			}
			return "", err
		}
	}

	headerQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_number, voucher_type_id, entry_date, reference, description,
			currency_id, exchange_rate, fiscal_period_id, status, total_debit, total_credit,
			document_type_id, document_id, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, headerQuery,
		entry.EntryID,
		entryNumber,
		entry.VoucherTypeID,
		entry.Date,
		entry.Reference,
		entry.Description,
		entry.CurrencyID,
		entry.ExchangeRate,
		entry.FiscalPeriodID,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.DocumentTypeID,
		entry.DocumentID,
		entry.OriginalEntryID,
		entry.ReversingEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_entries_document_voucher") {
			return "", fmt.Errorf("%w: an entry already exists for this document and voucher type", apperrors.ErrConflict)
		}
		if isUniqueViolation(err, "") {
			return "", fmt.Errorf("%w: entry number %s already exists for this voucher type", apperrors.ErrConflict, entryNumber)
		}
		return "", apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	if err := insertLinesInTx(ctx, tx, lines); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// insertLinesInTx batch-inserts a full line set within the transaction.
func insertLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.EntryLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (
			line_id, entry_id, order_number, account_id, description, debit, credit,
			third_party_id, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.OrderNumber,
			line.AccountID,
			line.Description,
			line.Debit,
			line.Credit,
			line.ThirdPartyID,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch", err)
	}
	return nil
}

// UpdateEntry replaces the header fields and the full line set of a DRAFT
// entry atomically. The stored status is re-checked under a row lock so a
// concurrent post cannot race the update.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s status is %s, only DRAFT entries can be updated",
			apperrors.ErrInvalidState, entry.EntryID, status)
	}

	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, reference = $3, description = $4, currency_id = $5,
		    exchange_rate = $6, fiscal_period_id = $7, total_debit = $8, total_credit = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, headerQuery,
		entry.EntryID,
		entry.Date,
		entry.Reference,
		entry.Description,
		entry.CurrencyID,
		entry.ExchangeRate,
		entry.FiscalPeriodID,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+entry.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entry.EntryID, err)
	}
	if err := insertLinesInTx(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions DRAFT -> POSTED. The stored balance and the fiscal
// period's openness are re-validated under the row lock because both may have
// changed since the draft was created.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.EntryStatus
	var entryDate time.Time
	var fiscalPeriodID string
	lockQuery := `
		SELECT status, entry_date, fiscal_period_id
		FROM journal_entries
		WHERE entry_id = $1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, entryID).Scan(&status, &entryDate, &fiscalPeriodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	if status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s status is %s, only DRAFT entries can be posted",
			apperrors.ErrInvalidState, entryID, status)
	}

	var totalDebit, totalCredit decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_lines
		WHERE entry_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, entryID).Scan(&totalDebit, &totalCredit); err != nil {
		return apperrors.NewAppError(500, "failed to sum lines for entry "+entryID, err)
	}
	if totalDebit.IsZero() && totalCredit.IsZero() {
		return fmt.Errorf("%w: entry %s has no lines", apperrors.ErrValidation, entryID)
	}
	if !accounting.WithinTolerance(totalDebit, totalCredit) {
		return fmt.Errorf("%w: entry %s is unbalanced, debits %s vs credits %s",
			apperrors.ErrValidation, entryID, totalDebit.String(), totalCredit.String())
	}

	var isClosed bool
	var startDate, endDate time.Time
	periodQuery := `SELECT is_closed, start_date, end_date FROM fiscal_periods WHERE fiscal_period_id = $1;`
	if err := tx.QueryRow(ctx, periodQuery, fiscalPeriodID).Scan(&isClosed, &startDate, &endDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, fiscalPeriodID)
		}
		return apperrors.NewAppError(500, "failed to fetch fiscal period "+fiscalPeriodID, err)
	}
	if isClosed {
		return fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrValidation, fiscalPeriodID)
	}
	period := domain.FiscalPeriod{StartDate: startDate, EndDate: endDate}
	if !period.Contains(entryDate) {
		return fmt.Errorf("%w: entry date %s falls outside fiscal period %s",
			apperrors.ErrValidation, entryDate.Format("2006-01-02"), fiscalPeriodID)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, total_debit = $3, total_credit = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, domain.EntryPosted, totalDebit, totalCredit, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to post entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversal inserts the mirrored reversing entry and flips the original
// from POSTED to REVERSED in one transaction. The original is locked first so
// two concurrent reversals of the same entry cannot both succeed. The fiscal
// period is re-checked under that lock: the mirror is a new POSTED movement
// and must not land in a period that closed since the original was posted.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.EntryLine) error {
	if reversing.OriginalEntryID == nil {
		return fmt.Errorf("%w: reversing entry has no original entry reference", apperrors.ErrValidation)
	}
	originalID := *reversing.OriginalEntryID

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.EntryStatus
	var reversingEntryID sql.NullString
	lockQuery := `SELECT status, reversing_entry_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, lockQuery, originalID).Scan(&status, &reversingEntryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+originalID, err)
	}
	if status != domain.EntryPosted || reversingEntryID.Valid {
		return fmt.Errorf("%w: entry %s status is %s, only POSTED entries without a reversal can be reversed",
			apperrors.ErrInvalidState, originalID, status)
	}

	var isClosed bool
	periodQuery := `SELECT is_closed FROM fiscal_periods WHERE fiscal_period_id = $1;`
	if err := tx.QueryRow(ctx, periodQuery, reversing.FiscalPeriodID).Scan(&isClosed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, reversing.FiscalPeriodID)
		}
		return apperrors.NewAppError(500, "failed to fetch fiscal period "+reversing.FiscalPeriodID, err)
	}
	if isClosed {
		return fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrValidation, reversing.FiscalPeriodID)
	}

	entryNumber := reversing.EntryNumber
	if entryNumber == "" {
		entryNumber, err = r.sequenceRepo.NextEntryNumber(ctx, tx, reversing.VoucherTypeID)
		if err != nil {
			return err
		}
	}

	insertQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_number, voucher_type_id, entry_date, reference, description,
			currency_id, exchange_rate, fiscal_period_id, status, total_debit, total_credit,
			document_type_id, document_id, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, insertQuery,
		reversing.EntryID,
		entryNumber,
		reversing.VoucherTypeID,
		reversing.Date,
		reversing.Reference,
		reversing.Description,
		reversing.CurrencyID,
		reversing.ExchangeRate,
		reversing.FiscalPeriodID,
		reversing.Status,
		reversing.TotalDebit,
		reversing.TotalCredit,
		reversing.DocumentTypeID,
		reversing.DocumentID,
		reversing.OriginalEntryID,
		nil,
		reversing.CreatedAt,
		reversing.CreatedBy,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reversing entry "+reversing.EntryID, err)
	}

	if err := insertLinesInTx(ctx, tx, lines); err != nil {
		return err
	}

	flipQuery := `
		UPDATE journal_entries
		SET status = $2, reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, flipQuery, originalID, domain.EntryReversed, reversing.EntryID, reversing.LastUpdatedAt, reversing.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalID+" as reversed", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a DRAFT entry and its lines atomically.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s status is %s, only DRAFT entries can be deleted",
			apperrors.ErrInvalidState, entryID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// lockEntryStatus locks the entry header row and returns its current status.
func lockEntryStatus(ctx context.Context, tx pgx.Tx, entryID string) (domain.EntryStatus, error) {
	var status domain.EntryStatus
	query := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	err := tx.QueryRow(ctx, query, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	return status, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return entry, nil
}

// scanEntry scans one header row into a domain entry.
func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	var documentTypeID, documentID, originalEntryID, reversingEntryID sql.NullString

	err := row.Scan(
		&entry.EntryID,
		&entry.EntryNumber,
		&entry.VoucherTypeID,
		&entry.Date,
		&entry.Reference,
		&entry.Description,
		&entry.CurrencyID,
		&entry.ExchangeRate,
		&entry.FiscalPeriodID,
		&entry.Status,
		&entry.TotalDebit,
		&entry.TotalCredit,
		&documentTypeID,
		&documentID,
		&originalEntryID,
		&reversingEntryID,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if documentTypeID.Valid {
		entry.DocumentTypeID = &documentTypeID.String
	}
	if documentID.Valid {
		entry.DocumentID = &documentID.String
	}
	if originalEntryID.Valid {
		entry.OriginalEntryID = &originalEntryID.String
	}
	if reversingEntryID.Valid {
		entry.ReversingEntryID = &reversingEntryID.String
	}
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of one entry ordered by order_number.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `SELECT` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY order_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()
	return scanLines(rows)
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	result := make(map[string][]domain.EntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `SELECT` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, order_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	lines, err := scanLines(rows)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		result[line.EntryID] = append(result[line.EntryID], line)
	}
	return result, nil
}

// scanLines drains a line rowset.
func scanLines(rows pgx.Rows) ([]domain.EntryLine, error) {
	var lines []domain.EntryLine
	for rows.Next() {
		var line domain.EntryLine
		var thirdPartyID sql.NullString
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.OrderNumber,
			&line.AccountID,
			&line.Description,
			&line.Debit,
			&line.Credit,
			&thirdPartyID,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		if thirdPartyID.Valid {
			line.ThirdPartyID = &thirdPartyID.String
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate line rows", err)
	}
	return lines, nil
}

// ListEntries retrieves a filtered page of entry headers ordered by
// (entry_date ASC, entry_number ASC), plus the total count matching the
// filter. Reversing mirrors are excluded unless the filter asks for them.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	addCondition := func(clause string, value any) {
		conditions = append(conditions, strings.Replace(clause, "?", "$"+strconv.Itoa(argPos), 1))
		args = append(args, value)
		argPos++
	}

	if filter.DateFrom != nil {
		addCondition("entry_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("entry_date <= ?", *filter.DateTo)
	}
	if filter.Status != nil {
		addCondition("status = ?", *filter.Status)
	}
	if filter.VoucherTypeID != nil {
		addCondition("voucher_type_id = ?", *filter.VoucherTypeID)
	}
	if filter.FiscalPeriodID != nil {
		addCondition("fiscal_period_id = ?", *filter.FiscalPeriodID)
	}
	if filter.EntryNumberPrefix != nil {
		addCondition("entry_number LIKE ?", *filter.EntryNumberPrefix+"%")
	}
	if filter.ThirdPartyID != nil {
		addCondition("entry_id IN (SELECT entry_id FROM journal_lines WHERE third_party_id = ?)", *filter.ThirdPartyID)
	}
	if !filter.IncludeReversals {
		conditions = append(conditions, "original_entry_id IS NULL")
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count entries", err)
	}

	pageQuery := `SELECT` + entryColumns + `
		FROM journal_entries
		WHERE ` + where + `
		ORDER BY entry_date ASC, entry_number ASC
		LIMIT $` + strconv.Itoa(argPos) + ` OFFSET $` + strconv.Itoa(argPos+1) + `;`
	pageArgs := append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate entry rows", err)
	}

	return entries, total, nil
}
