package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// JournalItemRequest is one leg of an entry. Exactly one of debit or
// credit must be positive.
type JournalItemRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to post a manual entry.
type CreateJournalEntryRequest struct {
	EntryDate         time.Time            `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description       string               `json:"description" binding:"required"`
	ReferenceDocument string               `json:"referenceDocument"`
	Items             []JournalItemRequest `json:"items" binding:"required,min=2,dive"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	Offset    int        `form:"offset,default=0"`
}

// JournalItemResponse mirrors domain.JournalItem.
type JournalItemResponse struct {
	ItemID    string          `json:"itemID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse mirrors domain.JournalEntry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryDate         time.Time             `json:"entryDate"`
	Description       string                `json:"description"`
	ReferenceDocument string                `json:"referenceDocument"`
	TransactionType   string                `json:"transactionType"`
	Items             []JournalItemResponse `json:"items"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	items := make([]JournalItemResponse, len(entry.Items))
	for i, it := range entry.Items {
		items[i] = JournalItemResponse{
			ItemID:    it.ItemID,
			AccountID: it.AccountID,
			Debit:     it.Debit,
			Credit:    it.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:           entry.EntryID,
		EntryDate:         entry.EntryDate,
		Description:       entry.Description,
		ReferenceDocument: entry.ReferenceDocument,
		TransactionType:   string(domain.TransactionTypeFromReference(entry.ReferenceDocument)),
		Items:             items,
		CreatedAt:         entry.CreatedAt,
		CreatedBy:         entry.CreatedBy,
	}
}

// ToListJournalEntryResponse converts entries to response DTOs.
func ToListJournalEntryResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
