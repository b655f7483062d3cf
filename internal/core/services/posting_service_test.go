package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/branchgl/backend/internal/apperrors"
	"github.com/branchgl/backend/internal/core/domain"
	portssvc "github.com/branchgl/backend/internal/core/ports/services"
	"github.com/branchgl/backend/internal/core/services"
	"github.com/branchgl/backend/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockResolver    *MockAccountResolver
	service         portssvc.PostingSvcFacade
	ctx             context.Context
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockResolver = new(MockAccountResolver)
	builder := services.NewEntryBuilder(s.mockResolver)
	s.service = services.NewPostingService(s.mockJournalRepo, s.mockAccountRepo, builder)
	s.ctx = context.Background()
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

func (s *PostingServiceTestSuite) account(id, code string, accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:   id,
		Code:        code,
		Name:        code,
		AccountType: accountType,
		IsActive:    true,
		Balance:     decimal.Zero,
	}
}

func (s *PostingServiceTestSuite) cashInRequest() dto.RecordEventRequest {
	return dto.RecordEventRequest{
		SourceModule:        "momo",
		SourceTransactionID: "MM-1001",
		EventKind:           "cash-in",
		Amount:              decimal.NewFromInt(100),
		Fee:                 decimal.NewFromInt(1),
		Roles: map[string]string{
			"cash":  "cash-in-till",
			"float": "momo-float",
			"fee":   "fee-revenue",
		},
		BranchID: "ACCRA-01",
	}
}

func (s *PostingServiceTestSuite) TestRecordEventCashInWithFee() {
	cash := s.account("acc-cash", "1001-ACCRA-01", domain.Asset)
	float := s.account("acc-float", "1201-ACCRA-01", domain.Asset)
	fee := s.account("acc-fee", "4001", domain.Revenue)

	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockResolver.On("Resolve", s.ctx, domain.RoleCashInTill, "ACCRA-01", "teller-1").Return(cash, nil)
	s.mockResolver.On("Resolve", s.ctx, domain.RoleMomoFloat, "ACCRA-01", "teller-1").Return(float, nil)
	s.mockResolver.On("Resolve", s.ctx, domain.RoleFeeRevenue, "ACCRA-01", "teller-1").Return(fee, nil)

	var savedTxn domain.JournalTransaction
	var savedEntries []domain.JournalEntry
	var savedDeltas map[string]decimal.Decimal
	s.mockJournalRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.JournalTransaction)
			savedEntries = args.Get(2).([]domain.JournalEntry)
			savedDeltas = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	result, err := s.service.RecordEvent(s.ctx, s.cashInRequest(), "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.False(result.AlreadyPosted)
	s.Equal(domain.Posted, result.Status)

	s.Equal(domain.Posted, savedTxn.Status)
	s.Equal(domain.SourceMomo, savedTxn.SourceModule)
	s.Equal("MM-1001", savedTxn.SourceTransactionID)
	s.True(savedTxn.Amount.Equal(decimal.NewFromInt(101)))

	s.Require().Len(savedEntries, 4)
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, e := range savedEntries {
		totalDebits = totalDebits.Add(e.Debit)
		totalCredits = totalCredits.Add(e.Credit)
		s.Equal(savedTxn.TransactionID, e.TransactionID)
	}
	s.True(totalDebits.Equal(totalCredits))

	// Cash takes principal plus fee; float loses principal; fee revenue gains fee.
	s.True(savedDeltas["acc-cash"].Equal(decimal.NewFromInt(101)))
	s.True(savedDeltas["acc-float"].Equal(decimal.NewFromInt(-100)))
	s.True(savedDeltas["acc-fee"].Equal(decimal.NewFromInt(-1)))

	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockResolver.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestRecordEventWithoutFeeSkipsFeeLines() {
	cash := s.account("acc-cash", "1001-ACCRA-01", domain.Asset)
	float := s.account("acc-float", "1201-ACCRA-01", domain.Asset)

	req := s.cashInRequest()
	req.SourceTransactionID = "MM-1002"
	req.Fee = decimal.Zero

	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1002").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockResolver.On("Resolve", s.ctx, domain.RoleCashInTill, "ACCRA-01", "teller-1").Return(cash, nil)
	s.mockResolver.On("Resolve", s.ctx, domain.RoleMomoFloat, "ACCRA-01", "teller-1").Return(float, nil)

	var savedEntries []domain.JournalEntry
	s.mockJournalRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	_, err := s.service.RecordEvent(s.ctx, req, "teller-1")

	s.Require().NoError(err)
	s.Len(savedEntries, 2)
	s.mockResolver.AssertNotCalled(s.T(), "Resolve", s.ctx, domain.RoleFeeRevenue, "ACCRA-01", "teller-1")
}

func (s *PostingServiceTestSuite) TestRecordEventIdempotentFastPath() {
	existing := &domain.JournalTransaction{
		TransactionID: "txn-1",
		Status:        domain.Posted,
	}
	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(existing, nil).Once()

	result, err := s.service.RecordEvent(s.ctx, s.cashInRequest(), "teller-1")

	s.Require().NoError(err)
	s.True(result.AlreadyPosted)
	s.Equal("txn-1", result.TransactionID)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SavePosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestRecordEventConcurrentDuplicate() {
	cash := s.account("acc-cash", "1001-ACCRA-01", domain.Asset)
	float := s.account("acc-float", "1201-ACCRA-01", domain.Asset)
	fee := s.account("acc-fee", "4001", domain.Revenue)
	winner := &domain.JournalTransaction{TransactionID: "txn-winner", Status: domain.Posted}

	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockResolver.On("Resolve", s.ctx, domain.RoleCashInTill, "ACCRA-01", "teller-1").Return(cash, nil)
	s.mockResolver.On("Resolve", s.ctx, domain.RoleMomoFloat, "ACCRA-01", "teller-1").Return(float, nil)
	s.mockResolver.On("Resolve", s.ctx, domain.RoleFeeRevenue, "ACCRA-01", "teller-1").Return(fee, nil)
	s.mockJournalRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()
	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(winner, nil).Once()

	result, err := s.service.RecordEvent(s.ctx, s.cashInRequest(), "teller-1")

	s.Require().NoError(err)
	s.True(result.AlreadyPosted)
	s.Equal("txn-winner", result.TransactionID)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestRecordEventRejectsNonPositiveAmount() {
	req := s.cashInRequest()
	req.Amount = decimal.Zero

	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.RecordEvent(s.ctx, req, "teller-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SavePosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestRecordEventRejectsUnknownModule() {
	req := s.cashInRequest()
	req.SourceModule = "payroll"

	_, err := s.service.RecordEvent(s.ctx, req, "teller-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestRecordEventRejectsUnknownKind() {
	req := s.cashInRequest()
	req.EventKind = "teleport"

	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.RecordEvent(s.ctx, req, "teller-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConfiguration)
}

func (s *PostingServiceTestSuite) TestRecordEventRejectsMissingRoleBinding() {
	req := s.cashInRequest()
	delete(req.Roles, "float")

	s.mockJournalRepo.On("FindTransactionBySource", s.ctx, domain.SourceMomo, "MM-1001").
		Return(nil, apperrors.ErrNotFound).Once()
	cash := s.account("acc-cash", "1001-ACCRA-01", domain.Asset)
	s.mockResolver.On("Resolve", s.ctx, domain.RoleCashInTill, "ACCRA-01", "teller-1").Return(cash, nil).Maybe()

	_, err := s.service.RecordEvent(s.ctx, req, "teller-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) manualRequest(autoPost bool) dto.CreateManualTransactionRequest {
	return dto.CreateManualTransactionRequest{
		PostingDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "month-end adjustment",
		AutoPost:    autoPost,
		Lines: []dto.ManualEntryLine{
			{AccountCode: "5001", Debit: decimal.NewFromInt(250)},
			{AccountCode: "2001", Credit: decimal.NewFromInt(250)},
		},
	}
}

func (s *PostingServiceTestSuite) TestCreateManualTransactionPending() {
	expense := s.account("acc-exp", "5001", domain.Expense)
	payable := s.account("acc-pay", "2001", domain.Liability)

	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "5001").Return(expense, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "2001").Return(payable, nil).Once()

	var savedTxn domain.JournalTransaction
	var savedDeltas map[string]decimal.Decimal
	s.mockJournalRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.JournalTransaction)
			savedDeltas = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := s.service.CreateManualTransaction(s.ctx, s.manualRequest(false), "supervisor-1")

	s.Require().NoError(err)
	s.Equal(domain.Pending, txn.Status)
	s.Equal(domain.Pending, savedTxn.Status)
	s.Equal(domain.SourceManual, savedTxn.SourceModule)
	// PENDING transactions carry no balance effect until approval.
	s.Empty(savedDeltas)
}

func (s *PostingServiceTestSuite) TestCreateManualTransactionAutoPost() {
	expense := s.account("acc-exp", "5001", domain.Expense)
	payable := s.account("acc-pay", "2001", domain.Liability)

	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "5001").Return(expense, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "2001").Return(payable, nil).Once()

	var savedTxn domain.JournalTransaction
	var savedDeltas map[string]decimal.Decimal
	s.mockJournalRepo.On("SavePosting", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.JournalTransaction)
			savedDeltas = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := s.service.CreateManualTransaction(s.ctx, s.manualRequest(true), "supervisor-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, txn.Status)
	s.Equal(domain.Posted, savedTxn.Status)
	s.True(savedDeltas["acc-exp"].Equal(decimal.NewFromInt(250)))
	s.True(savedDeltas["acc-pay"].Equal(decimal.NewFromInt(-250)))
}

func (s *PostingServiceTestSuite) TestCreateManualTransactionRejectsUnbalanced() {
	expense := s.account("acc-exp", "5001", domain.Expense)
	payable := s.account("acc-pay", "2001", domain.Liability)

	req := s.manualRequest(true)
	req.Lines[1].Credit = decimal.NewFromInt(200)

	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "5001").Return(expense, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "2001").Return(payable, nil).Once()

	_, err := s.service.CreateManualTransaction(s.ctx, req, "supervisor-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnbalanced)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SavePosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestCreateManualTransactionRejectsInactiveAccount() {
	expense := s.account("acc-exp", "5001", domain.Expense)
	expense.IsActive = false

	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "5001").Return(expense, nil).Once()

	_, err := s.service.CreateManualTransaction(s.ctx, s.manualRequest(true), "supervisor-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestApproveTransaction() {
	pending := &domain.JournalTransaction{
		TransactionID: "txn-p",
		Status:        domain.Pending,
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", TransactionID: "txn-p", AccountID: "acc-exp", Debit: decimal.NewFromInt(250), Credit: decimal.Zero},
		{EntryID: "e2", TransactionID: "txn-p", AccountID: "acc-pay", Debit: decimal.Zero, Credit: decimal.NewFromInt(250)},
	}

	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-p").Return(pending, nil).Once()
	s.mockJournalRepo.On("FindEntriesByTransactionID", s.ctx, "txn-p").Return(entries, nil).Once()
	s.mockJournalRepo.On("MarkPosted", s.ctx, "txn-p", mock.Anything, "supervisor-1", mock.Anything).
		Run(func(args mock.Arguments) {
			deltas := args.Get(2).(map[string]decimal.Decimal)
			assert.True(s.T(), deltas["acc-exp"].Equal(decimal.NewFromInt(250)))
			assert.True(s.T(), deltas["acc-pay"].Equal(decimal.NewFromInt(-250)))
		}).Return(nil).Once()

	txn, err := s.service.ApproveTransaction(s.ctx, "txn-p", "supervisor-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, txn.Status)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestApproveTransactionRejectsNonPending() {
	posted := &domain.JournalTransaction{TransactionID: "txn-x", Status: domain.Posted}
	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-x").Return(posted, nil).Once()

	_, err := s.service.ApproveTransaction(s.ctx, "txn-x", "supervisor-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PostingServiceTestSuite) TestReverseTransaction() {
	original := &domain.JournalTransaction{
		TransactionID:       "txn-orig",
		SourceModule:        domain.SourceMomo,
		SourceTransactionID: "MM-1001",
		Status:              domain.Posted,
		Amount:              decimal.NewFromInt(101),
		BranchID:            "ACCRA-01",
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", TransactionID: "txn-orig", AccountID: "acc-cash", AccountCode: "1001-ACCRA-01", Debit: decimal.NewFromInt(101), Credit: decimal.Zero},
		{EntryID: "e2", TransactionID: "txn-orig", AccountID: "acc-float", AccountCode: "1201-ACCRA-01", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		{EntryID: "e3", TransactionID: "txn-orig", AccountID: "acc-fee", AccountCode: "4001", Debit: decimal.Zero, Credit: decimal.NewFromInt(1)},
	}

	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-orig").Return(original, nil).Once()
	s.mockJournalRepo.On("FindEntriesByTransactionID", s.ctx, "txn-orig").Return(entries, nil).Once()

	var savedTxn domain.JournalTransaction
	var savedEntries []domain.JournalEntry
	var savedDeltas map[string]decimal.Decimal
	s.mockJournalRepo.On("SaveReversal", s.ctx, "txn-orig", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(2).(domain.JournalTransaction)
			savedEntries = args.Get(3).([]domain.JournalEntry)
			savedDeltas = args.Get(4).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	reversal, err := s.service.ReverseTransaction(s.ctx, "txn-orig", "supervisor-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, reversal.Status)
	s.Require().NotNil(reversal.OriginalTransactionID)
	s.Equal("txn-orig", *reversal.OriginalTransactionID)
	s.Equal("txn-orig", savedTxn.SourceTransactionID)
	s.Equal("REVERSAL", savedTxn.SourceTransactionType)

	// Debits and credits swap line for line.
	s.Require().Len(savedEntries, 3)
	s.True(savedEntries[0].Credit.Equal(decimal.NewFromInt(101)))
	s.True(savedEntries[1].Debit.Equal(decimal.NewFromInt(100)))
	s.True(savedEntries[2].Debit.Equal(decimal.NewFromInt(1)))

	// Deltas exactly undo the original posting.
	s.True(savedDeltas["acc-cash"].Equal(decimal.NewFromInt(-101)))
	s.True(savedDeltas["acc-float"].Equal(decimal.NewFromInt(100)))
	s.True(savedDeltas["acc-fee"].Equal(decimal.NewFromInt(1)))

	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestReverseManualTransaction() {
	// A manual transaction's source id is its own transaction id, so the
	// reversal header carries the exact key the original holds in the live
	// source index. SaveReversal retires the original first; the reversal
	// must go through without tripping the duplicate guard.
	original := &domain.JournalTransaction{
		TransactionID:       "txn-man",
		SourceModule:        domain.SourceManual,
		SourceTransactionID: "txn-man",
		Status:              domain.Posted,
		Amount:              decimal.NewFromInt(250),
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", TransactionID: "txn-man", AccountID: "acc-exp", AccountCode: "5001", Debit: decimal.NewFromInt(250), Credit: decimal.Zero},
		{EntryID: "e2", TransactionID: "txn-man", AccountID: "acc-pay", AccountCode: "2001", Debit: decimal.Zero, Credit: decimal.NewFromInt(250)},
	}

	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-man").Return(original, nil).Once()
	s.mockJournalRepo.On("FindEntriesByTransactionID", s.ctx, "txn-man").Return(entries, nil).Once()

	var savedTxn domain.JournalTransaction
	s.mockJournalRepo.On("SaveReversal", s.ctx, "txn-man", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(2).(domain.JournalTransaction)
		}).Return(nil).Once()

	reversal, err := s.service.ReverseTransaction(s.ctx, "txn-man", "supervisor-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, reversal.Status)
	s.Equal(domain.SourceManual, savedTxn.SourceModule)
	s.Equal("txn-man", savedTxn.SourceTransactionID)
	s.Require().Len(reversal.Entries, 2)
	s.True(reversal.Entries[0].Credit.Equal(decimal.NewFromInt(250)))
	s.True(reversal.Entries[1].Debit.Equal(decimal.NewFromInt(250)))
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestReverseTransactionLostRace() {
	original := &domain.JournalTransaction{
		TransactionID:       "txn-orig",
		SourceModule:        domain.SourceMomo,
		SourceTransactionID: "MM-1001",
		Status:              domain.Posted,
		Amount:              decimal.NewFromInt(100),
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", TransactionID: "txn-orig", AccountID: "acc-cash", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{EntryID: "e2", TransactionID: "txn-orig", AccountID: "acc-float", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}

	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-orig").Return(original, nil).Once()
	s.mockJournalRepo.On("FindEntriesByTransactionID", s.ctx, "txn-orig").Return(entries, nil).Once()
	// A concurrent reversal won the row lock and flipped the original first.
	s.mockJournalRepo.On("SaveReversal", s.ctx, "txn-orig", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	_, err := s.service.ReverseTransaction(s.ctx, "txn-orig", "supervisor-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(err.Error(), "already has a reversal")
}

func (s *PostingServiceTestSuite) TestReverseTransactionRejectsReversal() {
	origID := "txn-first"
	reversalTxn := &domain.JournalTransaction{
		TransactionID:         "txn-rev",
		Status:                domain.Posted,
		OriginalTransactionID: &origID,
	}
	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-rev").Return(reversalTxn, nil).Once()

	_, err := s.service.ReverseTransaction(s.ctx, "txn-rev", "supervisor-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PostingServiceTestSuite) TestReverseTransactionRejectsNonPosted() {
	pending := &domain.JournalTransaction{TransactionID: "txn-p", Status: domain.Pending}
	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-p").Return(pending, nil).Once()

	_, err := s.service.ReverseTransaction(s.ctx, "txn-p", "supervisor-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PostingServiceTestSuite) TestGetTransactionByID() {
	txn := &domain.JournalTransaction{TransactionID: "txn-1", Status: domain.Posted}
	entries := []domain.JournalEntry{{EntryID: "e1", TransactionID: "txn-1"}}

	s.mockJournalRepo.On("FindTransactionByID", s.ctx, "txn-1").Return(txn, nil).Once()
	s.mockJournalRepo.On("FindEntriesByTransactionID", s.ctx, "txn-1").Return(entries, nil).Once()

	got, err := s.service.GetTransactionByID(s.ctx, "txn-1")

	s.Require().NoError(err)
	s.Len(got.Entries, 1)
}
