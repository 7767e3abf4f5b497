package response

import (
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

type SummaryResponse struct {
	Success            bool   `json:"success"`
	From               string `json:"from"`
	To                 string `json:"to"`
	VehiclesTotal      int    `json:"vehicles_total"`
	VehiclesInWorkshop int    `json:"vehicles_in_workshop"`
	ActiveOrders       int    `json:"active_orders"`
	ActiveEmployees    int    `json:"active_employees"`
}

func FromSummary(s usecase.ReportSummary) SummaryResponse {
	return SummaryResponse{
		Success:            true,
		From:               s.From,
		To:                 s.To,
		VehiclesTotal:      s.VehiclesTotal,
		VehiclesInWorkshop: s.VehiclesInWorkshop,
		ActiveOrders:       s.ActiveOrders,
		ActiveEmployees:    s.ActiveEmployees,
	}
}

type OrderRowResponse struct {
	WorkOrderResponse
	DurationDays *int `json:"duration_days"`
}

type OrdersReportResponse struct {
	Success bool               `json:"success"`
	Items   []OrderRowResponse `json:"items"`
}

func FromOrderRows(rows []usecase.OrderReportRow) OrdersReportResponse {
	out := OrdersReportResponse{Success: true, Items: make([]OrderRowResponse, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, OrderRowResponse{WorkOrderResponse: FromWorkOrder(r.Order), DurationDays: r.DurationDays})
	}
	return out
}

type GlobalResponse struct {
	Success     bool           `json:"success"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	AverageDays float64        `json:"average_days"`
}

func FromGlobal(g usecase.GlobalSummary) GlobalResponse {
	by := make(map[string]int, len(g.ByStatus))
	for _, s := range entities.AllStatuses {
		by[string(s)] = g.ByStatus[s]
	}
	return GlobalResponse{Success: true, From: g.From, To: g.To, Total: g.Total, ByStatus: by, AverageDays: g.AverageDays}
}

type WorkshopStatsResponse struct {
	WorkshopID    int64  `json:"workshop_id"`
	Name          string `json:"name"`
	VehiclesTotal int    `json:"vehicles_total"`
	Pending       int    `json:"pending"`
	InProcess     int    `json:"in_process"`
	Finalized     int    `json:"finalized"`
}

type WorkshopsReportResponse struct {
	Success bool                    `json:"success"`
	Items   []WorkshopStatsResponse `json:"items"`
}

func FromWorkshopStats(stats []usecase.WorkshopStats) WorkshopsReportResponse {
	out := WorkshopsReportResponse{Success: true, Items: make([]WorkshopStatsResponse, 0, len(stats))}
	for _, s := range stats {
		out.Items = append(out.Items, WorkshopStatsResponse(s))
	}
	return out
}

type WorkshopAverageResponse struct {
	WorkshopID int64   `json:"workshop_id"`
	Name       string  `json:"name"`
	Orders     int     `json:"orders"`
	Days       float64 `json:"days"`
}

type AverageTimesResponse struct {
	Success    bool                      `json:"success"`
	From       string                    `json:"from"`
	To         string                    `json:"to"`
	GlobalDays float64                   `json:"global_days"`
	ByWorkshop []WorkshopAverageResponse `json:"by_workshop"`
}

func FromAverageTimes(a usecase.AverageTimes) AverageTimesResponse {
	out := AverageTimesResponse{Success: true, From: a.From, To: a.To, GlobalDays: a.GlobalDays, ByWorkshop: make([]WorkshopAverageResponse, 0, len(a.ByWorkshop))}
	for _, w := range a.ByWorkshop {
		out.ByWorkshop = append(out.ByWorkshop, WorkshopAverageResponse(w))
	}
	return out
}
