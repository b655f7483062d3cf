package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchgl/backend/internal/apperrors"
	"github.com/branchgl/backend/internal/core/domain"
	portssvc "github.com/branchgl/backend/internal/core/ports/services"
	"github.com/branchgl/backend/internal/utils/accounting"
)

// amountSource selects which event amount a template line carries.
type amountSource int

const (
	fromPrincipal amountSource = iota
	fromFee
)

// templateLine is one line of an event-kind template: which slot it hits,
// which side, and which event amount it carries.
type templateLine struct {
	Slot   domain.RoleSlot
	Debit  bool
	Source amountSource
}

// eventTemplate is the debit/credit pattern of one event kind. Principal
// lines are always emitted; fee lines only when the event carries a fee > 0.
// A kind with no fee lines refuses events that carry a fee.
type eventTemplate struct {
	Principal []templateLine
	Fee       []templateLine
}

// eventTemplates is the complete event-kind -> line-pattern table. New event
// kinds are added here, not as branching in the builder.
var eventTemplates = map[domain.EventKind]eventTemplate{
	// Customer hands over cash, agent's wallet float goes out.
	domain.EventCashIn: {
		Principal: []templateLine{
			{Slot: domain.SlotCash, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotFloat, Debit: false, Source: fromPrincipal},
		},
		Fee: []templateLine{
			{Slot: domain.SlotCash, Debit: true, Source: fromFee},
			{Slot: domain.SlotFee, Debit: false, Source: fromFee},
		},
	},
	// Customer withdraws cash, agent's wallet float comes in.
	domain.EventCashOut: {
		Principal: []templateLine{
			{Slot: domain.SlotFloat, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotCash, Debit: false, Source: fromPrincipal},
		},
		Fee: []templateLine{
			{Slot: domain.SlotCash, Debit: true, Source: fromFee},
			{Slot: domain.SlotFee, Debit: false, Source: fromFee},
		},
	},
	// A card leaves inventory, customer pays cash for it.
	domain.EventCardIssuance: {
		Principal: []templateLine{
			{Slot: domain.SlotCash, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotInventory, Debit: false, Source: fromPrincipal},
		},
		Fee: []templateLine{
			{Slot: domain.SlotCash, Debit: true, Source: fromFee},
			{Slot: domain.SlotFee, Debit: false, Source: fromFee},
		},
	},
	// A batch of cards arrives from head office on credit.
	domain.EventCardBatch: {
		Principal: []templateLine{
			{Slot: domain.SlotInventory, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotPayable, Debit: false, Source: fromPrincipal},
		},
	},
	// An expense is recognized before it is paid.
	domain.EventExpenseAccrual: {
		Principal: []templateLine{
			{Slot: domain.SlotExpense, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotPayable, Debit: false, Source: fromPrincipal},
		},
	},
	// A previously accrued expense is settled in cash.
	domain.EventExpensePayment: {
		Principal: []templateLine{
			{Slot: domain.SlotPayable, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotCash, Debit: false, Source: fromPrincipal},
		},
	},
	// Commission earned, settled into the wallet float.
	domain.EventCommission: {
		Principal: []templateLine{
			{Slot: domain.SlotFloat, Debit: true, Source: fromPrincipal},
			{Slot: domain.SlotRevenue, Debit: false, Source: fromPrincipal},
		},
	},
}

// entryBuilder turns typed business events into balanced, fully resolved
// journal entry lines.
type entryBuilder struct {
	resolver portssvc.AccountResolverSvc
}

// NewEntryBuilder creates a new entry builder on top of an account resolver.
func NewEntryBuilder(resolver portssvc.AccountResolverSvc) portssvc.EntryBuilderSvc {
	return &entryBuilder{resolver: resolver}
}

var _ portssvc.EntryBuilderSvc = (*entryBuilder)(nil)

// BuildEntries expands the event through its kind's template into entry
// lines with resolved account ids. Lines are returned with TransactionID
// unset; the posting service stamps it before persisting.
func (b *entryBuilder) BuildEntries(ctx context.Context, event domain.BusinessEvent, actorID string) ([]domain.JournalEntry, error) {
	tmpl, ok := eventTemplates[event.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no entry template for event kind %q", apperrors.ErrConfiguration, event.Kind)
	}

	if !event.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, event.Amount.String())
	}
	if event.Fee.IsNegative() {
		return nil, fmt.Errorf("%w: fee must not be negative, got %s", apperrors.ErrInvalidAmount, event.Fee.String())
	}
	if !accounting.ExactMinorUnits(event.Amount) || !accounting.ExactMinorUnits(event.Fee) {
		return nil, fmt.Errorf("%w: amounts must be exact to %d decimal places", apperrors.ErrInvalidAmount, accounting.MinorUnitPlaces)
	}

	lines := tmpl.Principal
	if event.Fee.IsPositive() {
		if len(tmpl.Fee) == 0 {
			return nil, fmt.Errorf("%w: event kind %q does not accept a fee", apperrors.ErrValidation, event.Kind)
		}
		lines = append(append([]templateLine{}, tmpl.Principal...), tmpl.Fee...)
	}

	now := time.Now().UTC()
	entries := make([]domain.JournalEntry, 0, len(lines))
	for _, line := range lines {
		role, bound := event.Roles[line.Slot]
		if !bound {
			return nil, fmt.Errorf("%w: event kind %q needs a role bound to slot %q", apperrors.ErrValidation, event.Kind, line.Slot)
		}

		account, err := b.resolver.Resolve(ctx, role, event.BranchID, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve role %q for slot %q: %w", role, line.Slot, err)
		}

		amount := event.Amount
		if line.Source == fromFee {
			amount = event.Fee
		}

		entry := domain.JournalEntry{
			EntryID:     uuid.NewString(),
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			Description: event.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if line.Debit {
			entry.Debit = amount
			entry.Credit = decimal.Zero
		} else {
			entry.Debit = decimal.Zero
			entry.Credit = amount
		}
		entries = append(entries, entry)
	}

	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return nil, fmt.Errorf("template for event kind %q produced unbalanced lines: %w", event.Kind, err)
	}
	return entries, nil
}
