package repositories

import (
	"context"
	"time"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByCode retrieves an account by its unique business code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when
	// the code already exists, which resolvers treat as a lost (benign) race.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive; accounts are never deleted.
	DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error
}

// AccountBalancer defines the balance operations used inside the posting
// repository's database transaction. Balances are only ever touched here.
type AccountBalancer interface {
	// FindAccountsByIDsForUpdate locks the account rows for the duration of tx.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies relative balance deltas under the locks
	// taken by FindAccountsByIDsForUpdate.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalancer
}
