package pgsql

import (
	"context"
	"errors"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxFiscalPeriodRepository reads fiscal period data.
type PgxFiscalPeriodRepository struct {
	BaseRepository
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
func newPgxFiscalPeriodRepository(pool DBPool) portsrepo.FiscalPeriodReader {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFiscalPeriodRepository implements portsrepo.FiscalPeriodReader
var _ portsrepo.FiscalPeriodReader = (*PgxFiscalPeriodRepository)(nil)

// FindFiscalPeriodByID retrieves a fiscal period by its ID.
func (r *PgxFiscalPeriodRepository) FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT fiscal_period_id, name, start_date, end_date, is_closed
		FROM fiscal_periods
		WHERE fiscal_period_id = $1;
	`
	var period domain.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, fiscalPeriodID).Scan(
		&period.FiscalPeriodID,
		&period.Name,
		&period.StartDate,
		&period.EndDate,
		&period.IsClosed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period by ID "+fiscalPeriodID, err)
	}
	return &period, nil
}

// ListFiscalPeriods retrieves all fiscal periods ordered by start date.
func (r *PgxFiscalPeriodRepository) ListFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT fiscal_period_id, name, start_date, end_date, is_closed
		FROM fiscal_periods
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal periods", err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		var period domain.FiscalPeriod
		if err := rows.Scan(
			&period.FiscalPeriodID,
			&period.Name,
			&period.StartDate,
			&period.EndDate,
			&period.IsClosed,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fiscal period rows", err)
	}
	return periods, nil
}
