package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/branchgl/backend/internal/core/domain"
	portsrepo "github.com/branchgl/backend/internal/core/ports/repositories"
	portssvc "github.com/branchgl/backend/internal/core/ports/services"
	"github.com/branchgl/backend/internal/middleware"
)

// reportingService is the read-side statistics facade over posted entries.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// BalanceCheck reconciles total posted debits against credits for a period.
// A nonzero difference means corrupted data; the posting path cannot produce
// it, so surface loudly.
func (s *reportingService) BalanceCheck(ctx context.Context, from, to time.Time, filters portsrepo.ReportingFilters) (*domain.BalanceCheck, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	check, err := s.reportingRepo.GetBalanceCheckData(ctx, from, to, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to run balance check: %w", err)
	}
	check.Difference = check.TotalDebits.Sub(check.TotalCredits)
	check.IsBalanced = check.Difference.IsZero()
	if !check.IsBalanced {
		logger.Error("Ledger out of balance",
			slog.String("total_debits", check.TotalDebits.String()),
			slog.String("total_credits", check.TotalCredits.String()),
			slog.String("difference", check.Difference.String()))
	}
	return check, nil
}

// ActivityBySourceModule aggregates posted activity per source module.
func (s *reportingService) ActivityBySourceModule(ctx context.Context, from, to time.Time) ([]domain.ModuleActivity, error) {
	activity, err := s.reportingRepo.GetActivityBySourceModule(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate module activity: %w", err)
	}
	return activity, nil
}

// TrialBalance generates the per-account debit/credit totals as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}
	return rows, nil
}

// BalanceSheet generates a balance sheet as of a date. Sections come back
// from the repository already in natural sign for display.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
	}
	report.TotalAssets = sumAmounts(assets)
	report.TotalLiabilities = sumAmounts(liabilities)
	report.TotalEquity = sumAmounts(equity)
	return report, nil
}

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}
