package repositories

import (
	"context"
	"time"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal transaction headers
type JournalReader interface {
	// FindTransactionByID retrieves a transaction header by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error)

	// FindTransactionBySource retrieves the live (non-reversed) transaction for
	// a source event, or apperrors.ErrNotFound when none exists.
	FindTransactionBySource(ctx context.Context, module domain.SourceModule, sourceTransactionID string) (*domain.JournalTransaction, error)

	// ListTransactions retrieves a cursor-paginated list of transaction headers.
	ListTransactions(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalTransaction, *string, error)
}

// EntryReader defines read operations for journal entry lines
type EntryReader interface {
	// FindEntriesByTransactionID retrieves all lines of one transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// ListEntriesByAccountCode retrieves a cursor-paginated list of posted
	// entry lines against an account.
	ListEntriesByAccountCode(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines the atomic write operations of the posting engine
type JournalWriter interface {
	// SavePosting persists the header and its lines and, when the header is
	// POSTED, applies balance deltas — all in one database transaction.
	// Returns apperrors.ErrDuplicate when a live transaction already exists
	// for the header's (source module, source transaction id).
	SavePosting(ctx context.Context, txn domain.JournalTransaction, entries []domain.JournalEntry, deltas map[string]decimal.Decimal) error

	// MarkPosted transitions a PENDING transaction to POSTED and applies the
	// balance deltas atomically. Returns apperrors.ErrConflict when the
	// transaction is not PENDING.
	MarkPosted(ctx context.Context, transactionID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error

	// SaveReversal marks the original POSTED header REVERSED, persists the
	// compensating header with its lines and applies the balance deltas, all
	// in one database transaction. The original's lines are never touched.
	// Returns apperrors.ErrConflict when the original is no longer POSTED.
	SaveReversal(ctx context.Context, originalTransactionID string, reversal domain.JournalTransaction, entries []domain.JournalEntry, deltas map[string]decimal.Decimal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	EntryReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
