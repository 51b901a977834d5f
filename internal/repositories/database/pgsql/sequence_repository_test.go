package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextEntryNumber_AllocatesAndIncrements(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	voucherTypeID := "vt-1"
	mockPool.ExpectBegin()
	mockPool.ExpectQuery("SELECT prefix, padding, next_number").
		WithArgs(voucherTypeID).
		WillReturnRows(pgxmock.NewRows([]string{"prefix", "padding", "next_number"}).
			AddRow("CI-", 6, int64(42)))
	mockPool.ExpectExec("UPDATE voucher_types SET next_number").
		WithArgs(voucherTypeID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := newPgxSequenceRepository(mockPool)

	ctx := context.Background()
	tx, err := mockPool.Begin(ctx)
	require.NoError(t, err)

	number, err := repo.NextEntryNumber(ctx, tx, voucherTypeID)

	require.NoError(t, err)
	assert.Equal(t, "CI-000042", number)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestNextEntryNumber_UnknownVoucherType(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery("SELECT prefix, padding, next_number").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newPgxSequenceRepository(mockPool)

	ctx := context.Background()
	tx, err := mockPool.Begin(ctx)
	require.NoError(t, err)

	_, err = repo.NextEntryNumber(ctx, tx, "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestFindVoucherTypeByID(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	now := time.Now().UTC()
	mockPool.ExpectQuery("SELECT voucher_type_id, name, prefix, padding, next_number").
		WithArgs("vt-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"voucher_type_id", "name", "prefix", "padding", "next_number",
			"created_at", "created_by", "last_updated_at", "last_updated_by",
		}).AddRow("vt-1", "Comprobante de ingreso", "CI-", 6, int64(43), now, "admin", now, "admin"))

	repo := newPgxSequenceRepository(mockPool)

	vt, err := repo.FindVoucherTypeByID(context.Background(), "vt-1")

	require.NoError(t, err)
	assert.Equal(t, "Comprobante de ingreso", vt.Name)
	assert.Equal(t, int64(43), vt.NextNumber)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestFindVoucherTypeByID_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT voucher_type_id, name, prefix, padding, next_number").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newPgxSequenceRepository(mockPool)

	_, err = repo.FindVoucherTypeByID(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
