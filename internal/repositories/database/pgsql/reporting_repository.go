package pgsql

import (
	"context"
	"time"

	"github.com/branchgl/backend/internal/apperrors"
	"github.com/branchgl/backend/internal/core/domain"
	portsrepo "github.com/branchgl/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for read-side aggregations.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetBalanceCheckData sums posted debits and credits over a date range.
// PENDING headers have no balance effect and are excluded.
func (r *ReportingRepository) GetBalanceCheckData(ctx context.Context, from, to time.Time, filters portsrepo.ReportingFilters) (*domain.BalanceCheck, error) {
	query := `
		SELECT COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM journal_entries e
		JOIN journal_transactions t ON e.transaction_id = t.transaction_id
		WHERE t.status <> 'PENDING'
		  AND t.posting_date >= $1 AND t.posting_date <= $2
		  AND ($3 = '' OR t.branch_id = $3)
		  AND ($4 = '' OR e.account_code = $4);
	`
	var check domain.BalanceCheck
	err := r.Pool.QueryRow(ctx, query, from, to, filters.BranchID, filters.AccountCode).
		Scan(&check.TotalDebits, &check.TotalCredits)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance check data", err)
	}
	return &check, nil
}

// GetActivityBySourceModule aggregates posted transactions per module.
func (r *ReportingRepository) GetActivityBySourceModule(ctx context.Context, from, to time.Time) ([]domain.ModuleActivity, error) {
	query := `
		SELECT source_module, COUNT(*), COALESCE(SUM(amount), 0)
		FROM journal_transactions
		WHERE status <> 'PENDING'
		  AND posting_date >= $1 AND posting_date <= $2
		GROUP BY source_module
		ORDER BY source_module;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query module activity", err)
	}
	defer rows.Close()

	activity := []domain.ModuleActivity{}
	for rows.Next() {
		var a domain.ModuleActivity
		if err := rows.Scan(&a.Module, &a.Count, &a.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan module activity row", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating module activity rows", err)
	}
	return activity, nil
}

// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
func (r *ReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM accounts a
		LEFT JOIN (journal_entries e
		       JOIN journal_transactions t ON e.transaction_id = t.transaction_id
		        AND t.status <> 'PENDING' AND t.posting_date <= $1)
		       ON e.account_id = a.account_id
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// GetBalanceSheetData retrieves asset, liability and equity nets as of a
// date, each section already in its natural sign.
func (r *ReportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	assets, err := r.sectionAmounts(ctx, asOf, "ASSET", false)
	if err != nil {
		return nil, nil, nil, err
	}
	liabilities, err := r.sectionAmounts(ctx, asOf, "LIABILITY", true)
	if err != nil {
		return nil, nil, nil, err
	}
	equity, err := r.sectionAmounts(ctx, asOf, "EQUITY", true)
	if err != nil {
		return nil, nil, nil, err
	}
	return assets, liabilities, equity, nil
}

// sectionAmounts nets posted entries per account of one type. creditNatural
// flips the sign so liabilities and equity come back positive.
func (r *ReportingRepository) sectionAmounts(ctx context.Context, asOf time.Time, accountType string, creditNatural bool) ([]domain.AccountAmount, error) {
	direction := `SUM(e.debit - e.credit)`
	if creditNatural {
		direction = `SUM(e.credit - e.debit)`
	}
	query := `
		SELECT a.code, a.name, COALESCE(` + direction + `, 0)
		FROM accounts a
		LEFT JOIN (journal_entries e
		       JOIN journal_transactions t ON e.transaction_id = t.transaction_id
		        AND t.status <> 'PENDING' AND t.posting_date <= $1)
		       ON e.account_id = a.account_id
		WHERE a.account_type = $2
		GROUP BY a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf, accountType)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance sheet section "+accountType, err)
	}
	defer rows.Close()

	amounts := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountCode, &a.Name, &a.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance sheet row", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance sheet rows", err)
	}
	return amounts, nil
}
