package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRole is a semantic account role known to the resolver, e.g.
// "cash-in-till" or "momo-float". Roles map to concrete accounts via a
// fixed configuration table; an unknown role is a configuration defect.
type AccountRole string

const (
	RoleCashInTill        AccountRole = "cash-in-till"
	RoleMomoFloat         AccountRole = "momo-float"
	RoleEZwichFloat       AccountRole = "ezwich-float"
	RoleCardInventory     AccountRole = "card-inventory"
	RoleFeeRevenue        AccountRole = "fee-revenue"
	RoleCommissionRevenue AccountRole = "commission-revenue"
	RoleOperatingExpense  AccountRole = "operating-expense"
	RoleAccountsPayable   AccountRole = "accounts-payable"
)

// RoleSlot names a position in an event-kind template. The caller binds each
// slot the template uses to a concrete AccountRole.
type RoleSlot string

const (
	SlotCash      RoleSlot = "cash"
	SlotFloat     RoleSlot = "float"
	SlotFee       RoleSlot = "fee"
	SlotInventory RoleSlot = "inventory"
	SlotPayable   RoleSlot = "payable"
	SlotExpense   RoleSlot = "expense"
	SlotRevenue   RoleSlot = "revenue"
)

// EventKind identifies the debit/credit pattern of a business event.
type EventKind string

const (
	EventCashIn         EventKind = "cash-in"
	EventCashOut        EventKind = "cash-out"
	EventCardIssuance   EventKind = "card-issuance"
	EventCardBatch      EventKind = "card-batch"
	EventExpenseAccrual EventKind = "expense-accrual"
	EventExpensePayment EventKind = "expense-payment"
	EventCommission     EventKind = "commission"
)

// BusinessEvent is the typed input to the entry builder: a domain transaction
// already durably recorded by its own module, to be expressed in the GL.
type BusinessEvent struct {
	SourceModule        SourceModule
	SourceTransactionID string
	Kind                EventKind
	Amount              decimal.Decimal // Principal, must be > 0
	Fee                 decimal.Decimal // Optional, >= 0; zero means no fee lines
	Roles               map[RoleSlot]AccountRole
	Description         string
	BranchID            string
	PostingDate         time.Time
	Metadata            map[string]string
}
