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
)

// accountService resolves semantic roles to chart-of-accounts rows and serves
// the read-side account operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// Resolve translates a semantic role (plus branch scope) into a concrete
// account, creating it on first use. Concurrent first-time resolutions are
// serialized by the accounts.code unique constraint: the loser of the insert
// race re-fetches the winner's row.
func (s *accountService) Resolve(ctx context.Context, role domain.AccountRole, branchID string, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	def, ok := roleTable[role]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account role %q", apperrors.ErrConfiguration, role)
	}

	code := accountCodeForRole(def, branchID)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err == nil {
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s for role %q is inactive", apperrors.ErrValidation, code, role)
		}
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account for role %q: %w", role, err)
	}

	now := time.Now().UTC()
	scopedBranch := ""
	if def.BranchScoped {
		scopedBranch = branchID
	}
	newAccount := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        accountNameForRole(def, branchID),
		AccountType: def.AccountType,
		BranchID:    scopedBranch,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, newAccount); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the creation race; the other caller's account is the one.
			logger.Debug("Account creation race lost, re-fetching", slog.String("code", code))
			return s.accountRepo.FindAccountByCode(ctx, code)
		}
		return nil, fmt.Errorf("failed to create account for role %q: %w", role, err)
	}

	logger.Info("Account created for role", slog.String("role", string(role)), slog.String("code", code), slog.String("account_id", newAccount.AccountID))
	return &newAccount, nil
}

// GetAccountByCode retrieves an account by its business code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountBalance returns the running balance of an account.
func (s *accountService) GetAccountBalance(ctx context.Context, code string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account.Balance, nil
}

// ListAccounts retrieves a paginated list of active accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ListAccountEntries retrieves posted entry lines against an account.
func (s *accountService) ListAccountEntries(ctx context.Context, code string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Verify the account exists before paging its entries.
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByAccountCode(ctx, code, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries by account from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// DeactivateAccount retires an account. History is preserved; the resolver
// refuses inactive accounts thereafter.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, code, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}

	logger.Info("Account deactivated", slog.String("code", code), slog.String("actor_id", actorID))
	return nil
}
