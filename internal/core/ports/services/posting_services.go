package services

import (
	"context"

	"github.com/branchgl/backend/internal/core/domain"
	"github.com/branchgl/backend/internal/dto"
)

// EntryBuilderSvc turns a typed business event into balanced, fully resolved
// entry lines according to the event-kind template table.
type EntryBuilderSvc interface {
	BuildEntries(ctx context.Context, event domain.BusinessEvent, actorID string) ([]domain.JournalEntry, error)
}

// PostingReaderSvc defines read operations over journal transactions
type PostingReaderSvc interface {
	// GetTransactionByID retrieves a header with its entry lines populated.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error)

	// GetJournalEntries retrieves the entry lines of one transaction.
	GetJournalEntries(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// ListTransactions retrieves a cursor-paginated list of headers.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// PostingWriterSvc defines the posting engine's mutating operations
type PostingWriterSvc interface {
	// RecordEvent posts a business event to the GL. Safe to retry: a repeat
	// call with the same source identifiers returns the original result.
	RecordEvent(ctx context.Context, req dto.RecordEventRequest, actorID string) (*dto.PostingResult, error)

	// CreateManualTransaction posts (or stages, when AutoPost is false) a
	// hand-written journal transaction against explicit account codes.
	CreateManualTransaction(ctx context.Context, req dto.CreateManualTransactionRequest, actorID string) (*domain.JournalTransaction, error)

	// ApproveTransaction transitions a PENDING manual transaction to POSTED,
	// applying its balance effects.
	ApproveTransaction(ctx context.Context, transactionID string, actorID string) (*domain.JournalTransaction, error)

	// ReverseTransaction posts a compensating transaction with swapped
	// debit/credit lines and links it to the original.
	ReverseTransaction(ctx context.Context, transactionID string, actorID string) (*domain.JournalTransaction, error)
}

// PostingSvcFacade combines the posting service interfaces
type PostingSvcFacade interface {
	PostingReaderSvc
	PostingWriterSvc
}
