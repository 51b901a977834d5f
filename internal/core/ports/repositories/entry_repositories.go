package repositories

import (
	"context"
	"time"

	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of one entry ordered by order_number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error)

	// ListEntries retrieves a filtered page of entry headers plus the total
	// count matching the filter (for pagination).
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, int64, error)
}

// EntryWriter defines write operations for journal entry data. Every method
// spans its reads-then-writes with a single database transaction; a failure
// anywhere leaves the stored state untouched.
type EntryWriter interface {
	// SaveEntry persists a new entry header and its full line set atomically.
	// When entry.EntryNumber is empty, the next number for the voucher type is
	// allocated under a row lock inside the same transaction. Returns the
	// entry number the header was stored with.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (string, error)

	// UpdateEntry replaces the header fields and the full line set of a DRAFT
	// entry atomically (delete-then-reinsert). Fails with ErrInvalidState when
	// the stored status is no longer DRAFT.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// PostEntry transitions DRAFT -> POSTED under a row lock, re-validating
	// the balance invariant and fiscal-period openness against the stored data
	// at transition time.
	PostEntry(ctx context.Context, entryID string, userID string, now time.Time) error

	// SaveReversal persists the mirrored reversing entry and flips the
	// original (reversing.OriginalEntryID) from POSTED to REVERSED, linking
	// the two, all in one transaction.
	SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.EntryLine) error

	// DeleteEntry removes a DRAFT entry and its lines atomically. Fails with
	// ErrInvalidState for any other status.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
