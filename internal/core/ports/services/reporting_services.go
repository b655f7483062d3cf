package services

import (
	"context"
	"time"

	"github.com/branchgl/backend/internal/core/domain"
	portsrepo "github.com/branchgl/backend/internal/core/ports/repositories"
)

// ReportingSvc is the read-side statistics facade consumed by dashboards.
type ReportingSvc interface {
	// BalanceCheck reconciles total debits against total credits for a period.
	BalanceCheck(ctx context.Context, from, to time.Time, filters portsrepo.ReportingFilters) (*domain.BalanceCheck, error)

	// ActivityBySourceModule aggregates posted activity per source module.
	ActivityBySourceModule(ctx context.Context, from, to time.Time) ([]domain.ModuleActivity, error)

	// TrialBalance generates a trial balance as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// BalanceSheet generates a balance sheet as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
}
