package pgsql

import (
	"context"
	"errors"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxSequenceRepository allocates entry numbers and reads voucher types. The
// counter lives on the voucher_types row itself so allocation and the insert
// consuming the number can share one transaction.
type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for voucher types and
// entry number allocation.
func newPgxSequenceRepository(pool DBPool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepository
var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextEntryNumber reads and increments the voucher type's counter inside the
// caller's transaction. SELECT ... FOR UPDATE serializes concurrent
// allocations for the same type; a rollback of the caller's transaction
// releases the number, so committed numbers stay gap-free.
func (r *PgxSequenceRepository) NextEntryNumber(ctx context.Context, tx pgx.Tx, voucherTypeID string) (string, error) {
	query := `
		SELECT prefix, padding, next_number
		FROM voucher_types
		WHERE voucher_type_id = $1
		FOR UPDATE;
	`
	var vt domain.VoucherType
	err := tx.QueryRow(ctx, query, voucherTypeID).Scan(&vt.Prefix, &vt.Padding, &vt.NextNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock voucher type "+voucherTypeID, err)
	}

	allocated := vt.NextNumber

	updateQuery := `UPDATE voucher_types SET next_number = next_number + 1 WHERE voucher_type_id = $1;`
	if _, err := tx.Exec(ctx, updateQuery, voucherTypeID); err != nil {
		return "", apperrors.NewAppError(500, "failed to increment counter for voucher type "+voucherTypeID, err)
	}

	return vt.FormatNumber(allocated), nil
}

// FindVoucherTypeByID retrieves a voucher type by its ID.
func (r *PgxSequenceRepository) FindVoucherTypeByID(ctx context.Context, voucherTypeID string) (*domain.VoucherType, error) {
	query := `
		SELECT voucher_type_id, name, prefix, padding, next_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_types
		WHERE voucher_type_id = $1;
	`
	var vt domain.VoucherType
	err := r.Pool.QueryRow(ctx, query, voucherTypeID).Scan(
		&vt.VoucherTypeID,
		&vt.Name,
		&vt.Prefix,
		&vt.Padding,
		&vt.NextNumber,
		&vt.CreatedAt,
		&vt.CreatedBy,
		&vt.LastUpdatedAt,
		&vt.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher type by ID "+voucherTypeID, err)
	}
	return &vt, nil
}

// ListVoucherTypes retrieves all configured voucher types ordered by name.
func (r *PgxSequenceRepository) ListVoucherTypes(ctx context.Context) ([]domain.VoucherType, error) {
	query := `
		SELECT voucher_type_id, name, prefix, padding, next_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_types
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list voucher types", err)
	}
	defer rows.Close()

	var types []domain.VoucherType
	for rows.Next() {
		var vt domain.VoucherType
		if err := rows.Scan(
			&vt.VoucherTypeID,
			&vt.Name,
			&vt.Prefix,
			&vt.Padding,
			&vt.NextNumber,
			&vt.CreatedAt,
			&vt.CreatedBy,
			&vt.LastUpdatedAt,
			&vt.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher type row", err)
		}
		types = append(types, vt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate voucher type rows", err)
	}
	return types, nil
}
