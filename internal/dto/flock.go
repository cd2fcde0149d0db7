package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// CreateBatchRequest defines the data needed to open a new flock batch.
type CreateBatchRequest struct {
	ShedNo       int             `json:"shedNo" binding:"required,min=1"`
	BatchNo      string          `json:"batchNo" binding:"required"`
	StartDate    time.Time       `json:"startDate" binding:"required" time_format:"2006-01-02"`
	Age          decimal.Decimal `json:"age" binding:"required"`
	OpeningCount int64           `json:"openingCount" binding:"required,min=1"`
}

// UpdateDailyRowRequest patches the editable fields of a day's flock row.
// Opening count and age are derived from the prior day and cannot be set.
type UpdateDailyRowRequest struct {
	Mortality *int64 `json:"mortality"`
	Culls     *int64 `json:"culls"`
	TableEggs *int64 `json:"tableEggs"`
	Jumbo     *int64 `json:"jumbo"`
	CR        *int64 `json:"cr"`
}

// BatchResponse mirrors domain.Batch.
type BatchResponse struct {
	BatchID      string          `json:"batchID"`
	ShedNo       int             `json:"shedNo"`
	BatchNo      string          `json:"batchNo"`
	StartDate    time.Time       `json:"startDate"`
	Age          decimal.Decimal `json:"age"`
	BatchType    string          `json:"batchType"`
	OpeningCount int64           `json:"openingCount"`
	IsActive     bool            `json:"isActive"`
}

// ToBatchResponse converts a domain.Batch to its DTO.
func ToBatchResponse(b *domain.Batch) BatchResponse {
	return BatchResponse{
		BatchID:      b.BatchID,
		ShedNo:       b.ShedNo,
		BatchNo:      b.BatchNo,
		StartDate:    b.StartDate,
		Age:          b.Age,
		BatchType:    string(domain.BatchTypeForAge(b.Age)),
		OpeningCount: b.OpeningCount,
		IsActive:     b.IsActive,
	}
}

// ToListBatchResponse converts batches to response DTOs.
func ToListBatchResponse(batches []domain.Batch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i := range batches {
		res[i] = ToBatchResponse(&batches[i])
	}
	return res
}

// DailyBatchRowResponse mirrors a chain row plus its derived metrics.
type DailyBatchRowResponse struct {
	BatchID      string          `json:"batchID"`
	ShedNo       int             `json:"shedNo"`
	BatchNo      string          `json:"batchNo"`
	BatchDate    string          `json:"batchDate"`
	Age          decimal.Decimal `json:"age"`
	OpeningCount int64           `json:"openingCount"`
	Mortality    int64           `json:"mortality"`
	Culls        int64           `json:"culls"`
	ClosingCount int64           `json:"closingCount"`
	TableEggs    int64           `json:"tableEggs"`
	Jumbo        int64           `json:"jumbo"`
	CR           int64           `json:"cr"`
	TotalEggs    int64           `json:"totalEggs"`
	HenDay       decimal.Decimal `json:"henDayPercent"`
}

// ToDailyBatchRowResponse converts a domain row to its DTO.
func ToDailyBatchRowResponse(r *domain.DailyBatchRow) DailyBatchRowResponse {
	return DailyBatchRowResponse{
		BatchID:      r.BatchID,
		ShedNo:       r.ShedNo,
		BatchNo:      r.BatchNo,
		BatchDate:    domain.DateKey(r.BatchDate),
		Age:          r.Age,
		OpeningCount: r.OpeningCount,
		Mortality:    r.Mortality,
		Culls:        r.Culls,
		ClosingCount: r.ClosingCount(),
		TableEggs:    r.TableEggs,
		Jumbo:        r.Jumbo,
		CR:           r.CR,
		TotalEggs:    r.TotalEggs(),
		HenDay:       r.HenDayPercent(),
	}
}

// ToListDailyBatchRowResponse converts rows to response DTOs.
func ToListDailyBatchRowResponse(rows []domain.DailyBatchRow) []DailyBatchRowResponse {
	res := make([]DailyBatchRowResponse, len(rows))
	for i := range rows {
		res[i] = ToDailyBatchRowResponse(&rows[i])
	}
	return res
}
