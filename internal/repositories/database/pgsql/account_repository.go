package pgsql

import (
	"context"
	"errors"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxAccountRepository reads chart-of-accounts metadata. The ledger core
// never writes accounts.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool DBPool) portsrepo.AccountReader {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountReader
var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, normal_balance, allows_entries, is_active`

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	var acc domain.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&acc.AccountID,
		&acc.Code,
		&acc.Name,
		&acc.NormalBalance,
		&acc.AllowsEntries,
		&acc.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map; the caller decides whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(
			&acc.AccountID,
			&acc.Code,
			&acc.Name,
			&acc.NormalBalance,
			&acc.AllowsEntries,
			&acc.IsActive,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return result, nil
}

// ListPostableAccounts retrieves every active account that allows entries,
// ordered by code.
func (r *PgxAccountRepository) ListPostableAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE allows_entries AND is_active ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postable accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(
			&acc.AccountID,
			&acc.Code,
			&acc.Name,
			&acc.NormalBalance,
			&acc.AllowsEntries,
			&acc.IsActive,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return accounts, nil
}
