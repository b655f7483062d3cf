package repositories

import (
	"context"
	"time"

	"github.com/branchgl/backend/internal/core/domain"
)

// ReportingFilters narrows read-side aggregations. Zero values mean "no filter".
type ReportingFilters struct {
	BranchID    string
	AccountCode string
}

// ReportingRepository defines the read-side aggregation queries consumed by
// dashboards. Strictly read-only; balances are owned by the posting engine.
type ReportingRepository interface {
	// GetBalanceCheckData sums posted debits and credits over a date range.
	GetBalanceCheckData(ctx context.Context, from, to time.Time, filters ReportingFilters) (*domain.BalanceCheck, error)

	// GetActivityBySourceModule aggregates posted transactions per module.
	GetActivityBySourceModule(ctx context.Context, from, to time.Time) ([]domain.ModuleActivity, error)

	// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetBalanceSheetData retrieves asset, liability and equity nets as of a date.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error)
}
