package services

import (
	"context"

	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/TyroGames/api-sub001/internal/dto"
)

// EntrySvcFacade is the journal-entry store: lifecycle mutations plus the
// libro diario queries. Every mutation records the acting user.
type EntrySvcFacade interface {
	// CreateEntry validates and persists a new DRAFT entry with its lines.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the header and full line set of a DRAFT entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry transitions DRAFT -> POSTED, re-validating at transition time.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry transitions POSTED -> REVERSED and creates the mirrored
	// reversing entry; returns the reversing entry.
	ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a DRAFT entry with its lines.
	DeleteEntry(ctx context.Context, entryID string, userID string) error

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves the libro diario page matching the filters plus
	// the total count.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
