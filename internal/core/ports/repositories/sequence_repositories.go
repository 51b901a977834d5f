package repositories

import (
	"context"

	"github.com/TyroGames/api-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SequenceAllocator issues the next entry number for a voucher type.
type SequenceAllocator interface {
	// NextEntryNumber reads and increments the voucher type's counter under a
	// row lock within the caller's transaction, so two concurrent allocations
	// for the same type serialize and a rolled-back caller releases its number.
	NextEntryNumber(ctx context.Context, tx pgx.Tx, voucherTypeID string) (string, error)
}

// VoucherTypeReader defines read operations for voucher type data
type VoucherTypeReader interface {
	// FindVoucherTypeByID retrieves a voucher type by its unique identifier.
	FindVoucherTypeByID(ctx context.Context, voucherTypeID string) (*domain.VoucherType, error)

	// ListVoucherTypes retrieves all configured voucher types.
	ListVoucherTypes(ctx context.Context) ([]domain.VoucherType, error)
}

// SequenceRepository combines allocation and voucher type reads.
type SequenceRepository interface {
	SequenceAllocator
	VoucherTypeReader
}
