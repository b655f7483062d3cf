package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchgl/backend/internal/apperrors"
	"github.com/branchgl/backend/internal/core/domain"
	portsrepo "github.com/branchgl/backend/internal/core/ports/repositories"
	portssvc "github.com/branchgl/backend/internal/core/ports/services"
	"github.com/branchgl/backend/internal/dto"
	"github.com/branchgl/backend/internal/middleware"
	"github.com/branchgl/backend/internal/utils/accounting"
)

// sourceTypeReversal marks compensating transactions. Their source id is the
// reversed transaction's id; SaveReversal retires the original from the live
// source index in the same DB transaction, so the key never collides even
// when the original is a manual transaction keyed to its own id.
const sourceTypeReversal = "REVERSAL"

var knownSourceModules = map[domain.SourceModule]struct{}{
	domain.SourceMomo:       {},
	domain.SourceEZwich:     {},
	domain.SourceExpense:    {},
	domain.SourceCommission: {},
	domain.SourceManual:     {},
}

// postingService is the single writer of journal rows and account balances.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	builder     portssvc.EntryBuilderSvc
}

// NewPostingService creates a new posting service.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, builder portssvc.EntryBuilderSvc) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		builder:     builder,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// RecordEvent posts a business event to the ledger. Retries with the same
// (source module, source transaction id) observe the first call's transaction
// and report success with AlreadyPosted set.
func (s *postingService) RecordEvent(ctx context.Context, req dto.RecordEventRequest, actorID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	event := req.ToDomain()
	if _, ok := knownSourceModules[event.SourceModule]; !ok {
		return nil, fmt.Errorf("%w: unknown source module %q", apperrors.ErrValidation, event.SourceModule)
	}
	if event.SourceTransactionID == "" {
		return nil, fmt.Errorf("%w: sourceTransactionID is required", apperrors.ErrValidation)
	}
	if event.PostingDate.IsZero() {
		event.PostingDate = time.Now().UTC()
	}

	// Fast path: the event was already posted by an earlier attempt.
	existing, err := s.journalRepo.FindTransactionBySource(ctx, event.SourceModule, event.SourceTransactionID)
	if err == nil {
		logger.Info("Duplicate event, returning existing transaction",
			slog.String("source_module", string(event.SourceModule)),
			slog.String("source_transaction_id", event.SourceTransactionID),
			slog.String("transaction_id", existing.TransactionID))
		return &dto.PostingResult{TransactionID: existing.TransactionID, Status: existing.Status, AlreadyPosted: true}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed idempotency lookup: %w", err)
	}

	entries, err := s.builder.BuildEntries(ctx, event, actorID)
	if err != nil {
		return nil, err
	}
	// The builder already balanced the lines; re-check before touching money.
	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.JournalTransaction{
		TransactionID:         uuid.NewString(),
		PostingDate:           event.PostingDate,
		SourceModule:          event.SourceModule,
		SourceTransactionID:   event.SourceTransactionID,
		SourceTransactionType: string(event.Kind),
		Description:           event.Description,
		Status:                domain.Posted,
		BranchID:              event.BranchID,
		Amount:                accounting.TotalDebits(entries),
		Metadata:              event.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	for i := range entries {
		entries[i].TransactionID = txn.TransactionID
	}

	deltas := accounting.BalanceDeltas(entries)
	if err := s.journalRepo.SavePosting(ctx, txn, entries, deltas); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the insert race to a concurrent retry of the same event.
			winner, findErr := s.journalRepo.FindTransactionBySource(ctx, event.SourceModule, event.SourceTransactionID)
			if findErr != nil {
				return nil, fmt.Errorf("duplicate posting detected but original not found: %w", findErr)
			}
			logger.Info("Concurrent duplicate posting, returning winner",
				slog.String("transaction_id", winner.TransactionID))
			return &dto.PostingResult{TransactionID: winner.TransactionID, Status: winner.Status, AlreadyPosted: true}, nil
		}
		return nil, fmt.Errorf("failed to save posting: %w", err)
	}

	logger.Info("Event posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("source_module", string(txn.SourceModule)),
		slog.String("source_transaction_id", txn.SourceTransactionID),
		slog.String("amount", txn.Amount.String()))
	return &dto.PostingResult{TransactionID: txn.TransactionID, Status: txn.Status, AlreadyPosted: false}, nil
}

// CreateManualTransaction stages or posts a hand-written journal transaction
// against explicit account codes. AutoPost=false leaves it PENDING with no
// balance effect until approval.
func (s *postingService) CreateManualTransaction(ctx context.Context, req dto.CreateManualTransactionRequest, actorID string) (*domain.JournalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	entries := make([]domain.JournalEntry, 0, len(req.Lines))
	for i, line := range req.Lines {
		account, err := s.accountRepo.FindAccountByCode(ctx, line.AccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d refers to unknown account %s", apperrors.ErrValidation, i+1, line.AccountCode)
			}
			return nil, fmt.Errorf("failed to look up account %s: %w", line.AccountCode, err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, line.AccountCode)
		}
		if !accounting.ExactMinorUnits(line.Debit) || !accounting.ExactMinorUnits(line.Credit) {
			return nil, fmt.Errorf("%w: amounts must be exact to %d decimal places", apperrors.ErrInvalidAmount, accounting.MinorUnitPlaces)
		}
		entries = append(entries, domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     account.AccountID,
			AccountCode:   account.Code,
			Debit:         line.Debit,
			Credit:        line.Credit,
			Description:   line.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}

	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return nil, err
	}

	status := domain.Pending
	if req.AutoPost {
		status = domain.Posted
	}

	txn := domain.JournalTransaction{
		TransactionID:         transactionID,
		PostingDate:           req.PostingDate,
		SourceModule:          domain.SourceManual,
		SourceTransactionID:   transactionID, // Manual entries are their own source event.
		SourceTransactionType: "manual-entry",
		Description:           req.Description,
		Status:                status,
		BranchID:              req.BranchID,
		Amount:                accounting.TotalDebits(entries),
		Metadata:              req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	deltas := map[string]decimal.Decimal{}
	if status == domain.Posted {
		deltas = accounting.BalanceDeltas(entries)
	}
	if err := s.journalRepo.SavePosting(ctx, txn, entries, deltas); err != nil {
		return nil, fmt.Errorf("failed to save manual transaction: %w", err)
	}

	logger.Info("Manual transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)),
		slog.String("amount", txn.Amount.String()))
	txn.Entries = entries
	return &txn, nil
}

// ApproveTransaction transitions a PENDING manual transaction to POSTED and
// applies its balance effects atomically.
func (s *postingService) ApproveTransaction(ctx context.Context, transactionID string, actorID string) (*domain.JournalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.Status != domain.Pending {
		return nil, fmt.Errorf("%w: transaction %s is %s, only PENDING transactions can be approved", apperrors.ErrConflict, transactionID, txn.Status)
	}

	entries, err := s.journalRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", transactionID, err)
	}
	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkPosted(ctx, transactionID, accounting.BalanceDeltas(entries), actorID, now); err != nil {
		return nil, fmt.Errorf("failed to post transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction approved", slog.String("transaction_id", transactionID), slog.String("actor_id", actorID))
	txn.Status = domain.Posted
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = actorID
	txn.Entries = entries
	return txn, nil
}

// ReverseTransaction posts a compensating transaction with the original's
// lines swapped debit-for-credit and links the two headers both ways. The
// original's lines are never modified.
func (s *postingService) ReverseTransaction(ctx context.Context, transactionID string, actorID string) (*domain.JournalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: transaction %s is %s, only POSTED transactions can be reversed", apperrors.ErrConflict, transactionID, original.Status)
	}
	if original.OriginalTransactionID != nil {
		return nil, fmt.Errorf("%w: transaction %s is itself a reversal", apperrors.ErrConflict, transactionID)
	}

	originalEntries, err := s.journalRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", transactionID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	reversalEntries := make([]domain.JournalEntry, len(originalEntries))
	for i, e := range originalEntries {
		reversalEntries[i] = domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: reversalID,
			AccountID:     e.AccountID,
			AccountCode:   e.AccountCode,
			Debit:         e.Credit, // Swapped
			Credit:        e.Debit,  // Swapped
			Description:   "Reversal of " + e.EntryID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}
	if err := accounting.ValidateEntriesBalance(reversalEntries); err != nil {
		return nil, err
	}

	reversal := domain.JournalTransaction{
		TransactionID:         reversalID,
		PostingDate:           now,
		SourceModule:          original.SourceModule,
		SourceTransactionID:   original.TransactionID, // Keyed to the reversed header, not the source event.
		SourceTransactionType: sourceTypeReversal,
		Description:           "Reversal of transaction " + original.TransactionID,
		Status:                domain.Posted,
		BranchID:              original.BranchID,
		Amount:                original.Amount,
		OriginalTransactionID: &original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	// One DB transaction: the original leaves the live source index before
	// the compensating header is inserted, then both commit or neither does.
	if err := s.journalRepo.SaveReversal(ctx, original.TransactionID, reversal, reversalEntries, accounting.BalanceDeltas(reversalEntries)); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction %s already has a reversal", apperrors.ErrConflict, transactionID)
		}
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	logger.Info("Transaction reversed",
		slog.String("transaction_id", original.TransactionID),
		slog.String("reversal_id", reversalID))
	reversal.Entries = reversalEntries
	return &reversal, nil
}

// GetTransactionByID retrieves a header with its entry lines populated.
func (s *postingService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	txn, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	entries, err := s.journalRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", transactionID, err)
	}
	txn.Entries = entries
	return txn, nil
}

// GetJournalEntries retrieves the entry lines of one transaction.
func (s *postingService) GetJournalEntries(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	if _, err := s.journalRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	entries, err := s.journalRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", transactionID, err)
	}
	return entries, nil
}

// ListTransactions retrieves a cursor-paginated list of transaction headers.
func (s *postingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	txns, nextToken, err := s.journalRepo.ListTransactions(ctx, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions[i] = dto.ToTransactionResponse(&txns[i])
	}
	return resp, nil
}
