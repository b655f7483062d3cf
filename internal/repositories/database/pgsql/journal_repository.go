package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/branchgl/backend/internal/apperrors"
	"github.com/branchgl/backend/internal/core/domain"
	portsrepo "github.com/branchgl/backend/internal/core/ports/repositories"
	"github.com/branchgl/backend/internal/models"
	"github.com/branchgl/backend/internal/utils/mapping"
	"github.com/branchgl/backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const transactionColumns = `transaction_id, posting_date, source_module, source_transaction_id, source_transaction_type, description, status, branch_id, amount, metadata, original_transaction_id, reversing_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.JournalTransaction, error) {
	var m models.JournalTransaction
	var branchID sql.NullString
	var originalID, reversingID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.PostingDate,
		&m.SourceModule,
		&m.SourceTransactionID,
		&m.SourceTransactionType,
		&m.Description,
		&m.Status,
		&branchID,
		&m.Amount,
		&m.Metadata,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.BranchID = branchID.String
	if originalID.Valid {
		m.OriginalTransactionID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingTransactionID = &reversingID.String
	}
	return &m, nil
}

// SavePosting persists the header and its entry lines and, when the header is
// POSTED, applies relative balance deltas under row locks, all in one DB
// transaction. A unique violation on the live source index maps to
// ErrDuplicate: a concurrent retry of the same event won the insert.
func (r *PgxJournalRepository) SavePosting(ctx context.Context, txn domain.JournalTransaction, entries []domain.JournalEntry, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction commits.
	defer r.Rollback(ctx, tx)

	if err := r.insertPostingInTx(ctx, tx, txn, entries, deltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertPostingInTx runs the posting script inside tx: header insert, balance
// deltas under row locks for POSTED headers, then the entry lines as a batch.
func (r *PgxJournalRepository) insertPostingInTx(ctx context.Context, tx pgx.Tx, txn domain.JournalTransaction, entries []domain.JournalEntry, deltas map[string]decimal.Decimal) error {
	now := txn.CreatedAt
	userID := txn.CreatedBy

	// 1. Insert the transaction header
	modelTxn := mapping.ToModelTransaction(txn)
	var branchID sql.NullString
	if modelTxn.BranchID != "" {
		branchID = sql.NullString{String: modelTxn.BranchID, Valid: true}
	}
	headerQuery := `
		INSERT INTO journal_transactions (
			transaction_id, posting_date, source_module, source_transaction_id,
			source_transaction_type, description, status, branch_id, amount, metadata,
			original_transaction_id, reversing_transaction_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.PostingDate,
		modelTxn.SourceModule,
		modelTxn.SourceTransactionID,
		modelTxn.SourceTransactionType,
		modelTxn.Description,
		modelTxn.Status,
		branchID,
		modelTxn.Amount,
		modelTxn.Metadata,
		modelTxn.OriginalTransactionID,
		modelTxn.ReversingTransactionID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: live transaction already exists for %s/%s",
				apperrors.ErrDuplicate, modelTxn.SourceModule, modelTxn.SourceTransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	// 2. Apply balance effects, but only for headers born POSTED. PENDING
	// headers take effect at approval time via MarkPosted.
	if txn.Status == domain.Posted && len(deltas) > 0 {
		if err := r.applyDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
			return err
		}
	}

	// 3. Insert the entry lines as one batch
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO journal_entries (entry_id, transaction_id, account_id, account_code, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelEntry(entry)
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.TransactionID,
			modelEntry.AccountID,
			modelEntry.AccountCode,
			modelEntry.Debit,
			modelEntry.Credit,
			modelEntry.Description,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for transaction "+modelTxn.TransactionID, err)
	}

	return nil
}

// SaveReversal atomically retires the original header and posts its
// compensating transaction. The original is locked, required POSTED, and
// flipped to REVERSED before the reversal header is inserted; that order
// takes it out of the live source index first, so a manual transaction
// (whose source id is its own transaction id) cannot collide with its
// reversal. The lock also serializes concurrent reversal attempts: the
// loser finds the row no longer POSTED and gets ErrConflict.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, originalTransactionID string, reversal domain.JournalTransaction, entries []domain.JournalEntry, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.TransactionStatus
	err = tx.QueryRow(ctx, `SELECT status FROM journal_transactions WHERE transaction_id = $1 FOR UPDATE;`, originalTransactionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("transaction " + originalTransactionID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+originalTransactionID, err)
	}
	if domain.TransactionStatus(status) != domain.Posted {
		return fmt.Errorf("%w: transaction %s is %s, expected POSTED", apperrors.ErrConflict, originalTransactionID, status)
	}

	updateQuery := `
		UPDATE journal_transactions
		SET status = $2,
		    reversing_transaction_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, originalTransactionID, domain.Reversed, reversal.TransactionID, reversal.CreatedAt, reversal.CreatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to mark transaction "+originalTransactionID+" reversed", err)
	}

	if err := r.insertPostingInTx(ctx, tx, reversal, entries, deltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// applyDeltasInTx locks the touched accounts and applies relative balance
// adjustments. Must run inside tx.
func (r *PgxJournalRepository) applyDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	accountIDs := make([]string, 0, len(deltas))
	for accID := range deltas {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, deltas, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// MarkPosted transitions a PENDING transaction to POSTED and applies its
// balance deltas in one DB transaction. The header row is locked first so
// concurrent approvals of the same transaction cannot double-apply.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, transactionID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.TransactionStatus
	err = tx.QueryRow(ctx, `SELECT status FROM journal_transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+transactionID, err)
	}
	if domain.TransactionStatus(status) != domain.Pending {
		return fmt.Errorf("%w: transaction %s is %s, expected PENDING", apperrors.ErrConflict, transactionID, status)
	}

	if err := r.applyDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_transactions
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, transactionID, domain.Posted, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to mark transaction "+transactionID+" posted", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction header by id.
func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM journal_transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// FindTransactionBySource retrieves the live (non-reversed) transaction for a
// source event. This is the idempotency fast path; the partial unique index
// guarantees at most one row qualifies.
func (r *PgxJournalRepository) FindTransactionBySource(ctx context.Context, module domain.SourceModule, sourceTransactionID string) (*domain.JournalTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM journal_transactions
		WHERE source_module = $1 AND source_transaction_id = $2 AND status <> 'REVERSED';
	`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, string(module), sourceTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by source "+string(module)+"/"+sourceTransactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// ListTransactions retrieves a paginated list of transaction headers using
// token-based pagination, newest posting date first.
func (r *PgxJournalRepository) ListTransactions(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM journal_transactions`
	filterClause := `WHERE TRUE`
	if !includeReversals {
		filterClause += ` AND status <> 'REVERSED' AND original_transaction_id IS NULL`
	}
	// Stable ordering for the cursor: posting_date DESC with created_at as
	// the tie-breaker.
	orderByClause := `ORDER BY posting_date DESC, created_at DESC`

	args := []interface{}{}
	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (posting_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.JournalTransaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.PostingDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.JournalTransaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainTransaction(m)
	}
	return domainTxns, nextTokenVal, nil
}

// FindEntriesByTransactionID retrieves all lines of one transaction.
func (r *PgxJournalRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, account_code, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.AccountCode,
			&e.Debit,
			&e.Credit,
			&e.Description,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

// ListEntriesByAccountCode retrieves a paginated list of posted entry lines
// against an account using token-based pagination.
func (r *PgxJournalRepository) ListEntriesByAccountCode(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.account_code, e.debit, e.credit, e.description,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, t.posting_date
		FROM journal_entries e
		JOIN journal_transactions t ON e.transaction_id = t.transaction_id
		WHERE e.account_code = $1 AND t.status <> 'PENDING'
	`
	orderByClause := `ORDER BY t.posting_date DESC, e.created_at DESC`

	args := []interface{}{accountCode}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (t.posting_date, e.created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountCode, err)
	}
	defer rows.Close()

	type entryWithDate struct {
		entry       models.JournalEntry
		postingDate time.Time
	}
	scanned := make([]entryWithDate, 0, fetchLimit)
	for rows.Next() {
		var e models.JournalEntry
		var postingDate time.Time
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.AccountCode,
			&e.Debit,
			&e.Credit,
			&e.Description,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&postingDate,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountCode, err)
		}
		scanned = append(scanned, entryWithDate{entry: e, postingDate: postingDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountCode, err)
	}

	var nextTokenVal *string
	results := scanned
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.postingDate, last.entry.CreatedAt)
		nextTokenVal = &token
		results = scanned[:limit]
	}

	entries := make([]models.JournalEntry, len(results))
	for i, s := range results {
		entries[i] = s.entry
	}
	return mapping.ToDomainEntrySlice(entries), nextTokenVal, nil
}

