package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/dto"
	"github.com/TyroGames/api-sub001/internal/utils/accounting"
)

var (
	ErrPeriodClosed       = fmt.Errorf("%w: fiscal period is closed", apperrors.ErrValidation)
	ErrDateOutsidePeriod  = fmt.Errorf("%w: entry date falls outside the fiscal period", apperrors.ErrValidation)
	ErrAccountNotPostable = fmt.Errorf("%w: account does not allow entries", apperrors.ErrValidation)
	ErrAccountInactive    = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
)

// entryService provides the journal-entry lifecycle operations.
type entryService struct {
	BaseService
	entryRepo        portsrepo.EntryRepositoryWithTx
	voucherTypeRepo  portsrepo.VoucherTypeReader
	accountRepo      portsrepo.AccountReader
	fiscalPeriodRepo portsrepo.FiscalPeriodReader
}

// NewEntryService creates a new entry service.
func NewEntryService(
	entryRepo portsrepo.EntryRepositoryWithTx,
	voucherTypeRepo portsrepo.VoucherTypeReader,
	accountRepo portsrepo.AccountReader,
	fiscalPeriodRepo portsrepo.FiscalPeriodReader,
) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:        entryRepo,
		voucherTypeRepo:  voucherTypeRepo,
		accountRepo:      accountRepo,
		fiscalPeriodRepo: fiscalPeriodRepo,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// validatePeriod checks that the fiscal period exists, is open and contains
// the entry date.
func (s *entryService) validatePeriod(ctx context.Context, fiscalPeriodID string, date time.Time) error {
	period, err := s.fiscalPeriodRepo.FindFiscalPeriodByID(ctx, fiscalPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, fiscalPeriodID)
		}
		return fmt.Errorf("failed to fetch fiscal period %s: %w", fiscalPeriodID, err)
	}
	if period.IsClosed {
		return fmt.Errorf("%w (%s)", ErrPeriodClosed, fiscalPeriodID)
	}
	if !period.Contains(date) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrDateOutsidePeriod,
			date.Format("2006-01-02"), period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}
	return nil
}

// validateAccounts checks that every referenced account exists, is active and
// allows entries.
func (s *entryService) validateAccounts(ctx context.Context, lines []domain.EntryLine) error {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	uniqueIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueIDs {
		acc, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w (%s)", ErrAccountInactive, id)
		}
		if !acc.AllowsEntries {
			return fmt.Errorf("%w (%s)", ErrAccountNotPostable, id)
		}
	}
	return nil
}

// buildLines converts request lines into domain lines with IDs, order
// numbers and audit fields assigned.
func buildLines(entryID string, reqLines []dto.CreateEntryLineRequest, userID string, now time.Time) []domain.EntryLine {
	lines := make([]domain.EntryLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			OrderNumber:  i + 1,
			AccountID:    lr.AccountID,
			Description:  lr.Description,
			Debit:        lr.Debit,
			Credit:       lr.Credit,
			ThirdPartyID: lr.ThirdPartyID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// CreateEntry creates a new DRAFT journal entry with its lines after validation.
// Implements portssvc.EntrySvcFacade
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := buildLines(entryID, req.Lines, userID, now)
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	if err := s.validatePeriod(ctx, req.FiscalPeriodID, req.Date); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return nil, err
	}
	if _, err := s.voucherTypeRepo.FindVoucherTypeByID(ctx, req.VoucherTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: voucher type %s", apperrors.ErrNotFound, req.VoucherTypeID)
		}
		return nil, fmt.Errorf("failed to fetch voucher type %s: %w", req.VoucherTypeID, err)
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	exchangeRate := req.ExchangeRate
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		EntryNumber:    req.EntryNumber, // Allocated by the repository when empty
		VoucherTypeID:  req.VoucherTypeID,
		Date:           req.Date,
		Reference:      req.Reference,
		Description:    req.Description,
		CurrencyID:     req.CurrencyID,
		ExchangeRate:   exchangeRate,
		FiscalPeriodID: req.FiscalPeriodID,
		Status:         domain.EntryDraft,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		DocumentTypeID: req.DocumentTypeID,
		DocumentID:     req.DocumentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entryNumber, err := s.entryRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("voucher_type_id", req.VoucherTypeID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	entry.EntryNumber = entryNumber
	entry.Lines = lines

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// UpdateEntry replaces the header fields and line set of a DRAFT entry.
// Implements portssvc.EntrySvcFacade
func (s *entryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s status is %s, only DRAFT entries can be updated",
			apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	now := time.Now().UTC()
	lines := buildLines(entryID, req.Lines, userID, now)
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}
	if err := s.validatePeriod(ctx, req.FiscalPeriodID, req.Date); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return nil, err
	}

	entry.Date = req.Date
	entry.Reference = req.Reference
	entry.Description = req.Description
	entry.CurrencyID = req.CurrencyID
	if !req.ExchangeRate.IsZero() {
		entry.ExchangeRate = req.ExchangeRate
	}
	entry.FiscalPeriodID = req.FiscalPeriodID
	entry.TotalDebit, entry.TotalCredit = accounting.SumLines(lines)
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// PostEntry transitions a DRAFT entry to POSTED, re-validating balance and
// period openness at transition time since the data may have changed since
// creation.
// Implements portssvc.EntrySvcFacade
func (s *entryService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanTransitionTo(domain.EntryPosted) {
		return nil, fmt.Errorf("%w: entry %s status is %s, expected DRAFT",
			apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}
	if err := s.validatePeriod(ctx, entry.FiscalPeriodID, entry.Date); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// The repository re-checks status, balance and period under a row lock.
	if err := s.entryRepo.PostEntry(ctx, entryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.EntryPosted
	entry.Lines = lines
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// ReverseEntry transitions a POSTED entry to REVERSED and creates a mirrored
// reversing entry (debit/credit swapped) linked to the original, both in one
// transaction. The mirror posts into the original's fiscal period, so that
// period must still be open. The original movement is never deleted.
// Implements portssvc.EntrySvcFacade
func (s *entryService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !original.Status.CanTransitionTo(domain.EntryReversed) {
		return nil, fmt.Errorf("%w: entry %s status is %s, expected POSTED",
			apperrors.ErrInvalidState, original.EntryNumber, original.Status)
	}
	if original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is itself a reversing entry",
			apperrors.ErrConflict, original.EntryNumber)
	}
	if err := s.validatePeriod(ctx, original.FiscalPeriodID, original.Date); err != nil {
		return nil, err
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		VoucherTypeID:   original.VoucherTypeID,
		Date:            original.Date,
		Reference:       original.Reference,
		Description:     fmt.Sprintf("Reversal of entry %s: %s", original.EntryNumber, original.Description),
		CurrencyID:      original.CurrencyID,
		ExchangeRate:    original.ExchangeRate,
		FiscalPeriodID:  original.FiscalPeriodID,
		Status:          domain.EntryPosted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		DocumentTypeID:  original.DocumentTypeID,
		DocumentID:      original.DocumentID,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversingLines := make([]domain.EntryLine, len(originalLines))
	for i, origLine := range originalLines {
		reversingLines[i] = domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      reversingID,
			OrderNumber:  origLine.OrderNumber,
			AccountID:    origLine.AccountID,
			Description:  origLine.Description,
			Debit:        origLine.Credit,
			Credit:       origLine.Debit,
			ThirdPartyID: origLine.ThirdPartyID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.entryRepo.SaveReversal(ctx, reversing, reversingLines); err != nil {
		s.LogError(ctx, err, "Failed to save reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal of entry %s: %w", entryID, err)
	}

	reversing.Lines = reversingLines
	s.LogInfo(ctx, "Entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversing_entry_id", reversingID))
	return &reversing, nil
}

// DeleteEntry removes a DRAFT entry and its lines.
// Implements portssvc.EntrySvcFacade
func (s *entryService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s status is %s, only DRAFT entries can be deleted",
			apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Entry deleted", slog.String("entry_id", entryID), slog.String("user_id", userID))
	return nil
}

// GetEntryByID retrieves an entry with its lines.
// Implements portssvc.EntrySvcFacade
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves the libro diario page matching the filters.
// Implements portssvc.EntrySvcFacade
func (s *entryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := domain.EntryFilter{
		DateFrom:          params.DateFrom,
		DateTo:            params.DateTo,
		VoucherTypeID:     params.VoucherTypeID,
		ThirdPartyID:      params.ThirdPartyID,
		FiscalPeriodID:    params.FiscalPeriodID,
		EntryNumberPrefix: params.EntryNumberPrefix,
		IncludeReversals:  params.IncludeReversals,
		Limit:             limit,
		Offset:            params.Offset,
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}

	entries, total, err := s.entryRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesMap, err := s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogWarn(ctx, "Failed to fetch lines for entries", slog.String("error", err.Error()))
		} else {
			for i := range entries {
				entries[i].Lines = linesMap[entries[i].EntryID]
			}
		}
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{
		Entries: responses,
		Total:   total,
		Limit:   limit,
		Offset:  params.Offset,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
