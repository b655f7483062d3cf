package accounting

import (
	"fmt"

	"github.com/branchgl/backend/internal/apperrors"
	"github.com/branchgl/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the currency's minor-unit precision; all entry amounts
// must be exact at this scale.
const MinorUnitPlaces = 2

// ValidateEntriesBalance checks the double-entry invariants over a set of
// lines: at least two lines, every line has exactly one positive side, and
// total debits equal total credits.
func ValidateEntriesBalance(entries []domain.JournalEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: a transaction needs at least two entry lines", apperrors.ErrUnbalanced)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("%w: entry %s has a negative amount", apperrors.ErrValidation, e.EntryID)
		}
		if e.Debit.IsPositive() == e.Credit.IsPositive() {
			return fmt.Errorf("%w: entry %s must have exactly one of debit/credit set", apperrors.ErrValidation, e.EntryID)
		}
		totalDebits = totalDebits.Add(e.Debit)
		totalCredits = totalCredits.Add(e.Credit)
	}

	if !totalDebits.Equal(totalCredits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalanced, totalDebits.String(), totalCredits.String())
	}
	return nil
}

// BalanceDeltas computes the net balance change per account id across a
// transaction's lines, debit-positive. The posting repository applies these
// as relative adjustments under row locks.
func BalanceDeltas(entries []domain.JournalEntry) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	for _, e := range entries {
		deltas[e.AccountID] = deltas[e.AccountID].Add(e.Delta())
	}
	return deltas
}

// TotalDebits sums the debit side of a balanced transaction; it is the
// economic value recorded on the header.
func TotalDebits(entries []domain.JournalEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Debit)
	}
	return total
}

// NaturalBalance converts a stored debit-positive balance into the account
// type's natural sign for display: liabilities, equity and revenue carry
// credit-natural balances.
func NaturalBalance(accountType domain.AccountType, balance decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return balance, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return balance.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ExactMinorUnits reports whether the amount is representable at the
// currency's minor-unit precision.
func ExactMinorUnits(amount decimal.Decimal) bool {
	return amount.Round(MinorUnitPlaces).Equal(amount)
}
