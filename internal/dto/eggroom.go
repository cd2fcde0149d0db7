package dto

import (
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// UpdateEggRoomReportRequest patches the editable fields of a day's report.
// Openings and the shed-received inflows (table, jumbo, grade C) are derived
// from the chain and the day's production and cannot be set directly.
type UpdateEggRoomReportRequest struct {
	TableTransfer      *int64 `json:"tableTransfer"`
	TableDamage        *int64 `json:"tableDamage"`
	TableOut           *int64 `json:"tableOut"`
	JumboTransfer      *int64 `json:"jumboTransfer"`
	JumboWaste         *int64 `json:"jumboWaste"`
	JumboIn            *int64 `json:"jumboIn"`
	GradeCRoomReceived *int64 `json:"gradeCRoomReceived"`
	GradeCTransfer     *int64 `json:"gradeCTransfer"`
	GradeCLabour       *int64 `json:"gradeCLabour"`
	GradeCWaste        *int64 `json:"gradeCWaste"`
}

// EggRoomReportResponse mirrors a day's report plus its derived closings.
type EggRoomReportResponse struct {
	ReportDate string `json:"reportDate"`

	TableOpening  int64 `json:"tableOpening"`
	TableReceived int64 `json:"tableReceived"`
	TableTransfer int64 `json:"tableTransfer"`
	TableDamage   int64 `json:"tableDamage"`
	TableOut      int64 `json:"tableOut"`
	TableClosing  int64 `json:"tableClosing"`

	JumboOpening  int64 `json:"jumboOpening"`
	JumboReceived int64 `json:"jumboReceived"`
	JumboTransfer int64 `json:"jumboTransfer"`
	JumboWaste    int64 `json:"jumboWaste"`
	JumboIn       int64 `json:"jumboIn"`
	JumboClosing  int64 `json:"jumboClosing"`

	GradeCOpening      int64 `json:"gradeCOpening"`
	GradeCShedReceived int64 `json:"gradeCShedReceived"`
	GradeCRoomReceived int64 `json:"gradeCRoomReceived"`
	GradeCTransfer     int64 `json:"gradeCTransfer"`
	GradeCLabour       int64 `json:"gradeCLabour"`
	GradeCWaste        int64 `json:"gradeCWaste"`
	GradeCClosing      int64 `json:"gradeCClosing"`
}

// ToEggRoomReportResponse converts a domain report to its DTO.
func ToEggRoomReportResponse(r *domain.EggRoomReport) EggRoomReportResponse {
	return EggRoomReportResponse{
		ReportDate:         domain.DateKey(r.ReportDate),
		TableOpening:       r.TableOpening,
		TableReceived:      r.TableReceived,
		TableTransfer:      r.TableTransfer,
		TableDamage:        r.TableDamage,
		TableOut:           r.TableOut,
		TableClosing:       r.TableClosing(),
		JumboOpening:       r.JumboOpening,
		JumboReceived:      r.JumboReceived,
		JumboTransfer:      r.JumboTransfer,
		JumboWaste:         r.JumboWaste,
		JumboIn:            r.JumboIn,
		JumboClosing:       r.JumboClosing(),
		GradeCOpening:      r.GradeCOpening,
		GradeCShedReceived: r.GradeCShedReceived,
		GradeCRoomReceived: r.GradeCRoomReceived,
		GradeCTransfer:     r.GradeCTransfer,
		GradeCLabour:       r.GradeCLabour,
		GradeCWaste:        r.GradeCWaste,
		GradeCClosing:      r.GradeCClosing(),
	}
}

// ToListEggRoomReportResponse converts reports to response DTOs.
func ToListEggRoomReportResponse(reports []domain.EggRoomReport) []EggRoomReportResponse {
	res := make([]EggRoomReportResponse, len(reports))
	for i := range reports {
		res[i] = ToEggRoomReportResponse(&reports[i])
	}
	return res
}

// EggStockResponse is the current closing stock per grade.
type EggStockResponse struct {
	Table  int64 `json:"table"`
	Jumbo  int64 `json:"jumbo"`
	GradeC int64 `json:"gradeC"`
	Total  int64 `json:"total"`
}

// ToEggStockResponse converts stock levels to the response DTO.
func ToEggStockResponse(s domain.EggStockLevels) EggStockResponse {
	return EggStockResponse{
		Table:  s.Table,
		Jumbo:  s.Jumbo,
		GradeC: s.GradeC,
		Total:  s.Table + s.Jumbo + s.GradeC,
	}
}
