package mapping

import (
	"github.com/branchgl/backend/internal/core/domain"
	"github.com/branchgl/backend/internal/models"
)

// ToModelTransaction converts a domain JournalTransaction to its model
func ToModelTransaction(d domain.JournalTransaction) models.JournalTransaction {
	return models.JournalTransaction{
		TransactionID:          d.TransactionID,
		PostingDate:            d.PostingDate,
		SourceModule:           string(d.SourceModule),
		SourceTransactionID:    d.SourceTransactionID,
		SourceTransactionType:  d.SourceTransactionType,
		Description:            d.Description,
		Status:                 models.TransactionStatus(d.Status),
		BranchID:               d.BranchID,
		Amount:                 d.Amount,
		Metadata:               d.Metadata,
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model JournalTransaction to its domain form
func ToDomainTransaction(m models.JournalTransaction) domain.JournalTransaction {
	return domain.JournalTransaction{
		TransactionID:          m.TransactionID,
		PostingDate:            m.PostingDate,
		SourceModule:           domain.SourceModule(m.SourceModule),
		SourceTransactionID:    m.SourceTransactionID,
		SourceTransactionType:  m.SourceTransactionType,
		Description:            m.Description,
		Status:                 domain.TransactionStatus(m.Status),
		BranchID:               m.BranchID,
		Amount:                 m.Amount,
		Metadata:               m.Metadata,
		OriginalTransactionID:  m.OriginalTransactionID,
		ReversingTransactionID: m.ReversingTransactionID,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain JournalEntry to its model
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		AccountCode:   d.AccountCode,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model JournalEntry to its domain form
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		AccountCode:   m.AccountCode,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
