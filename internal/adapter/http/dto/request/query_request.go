package request

import (
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

type FichaQuery struct {
	Plate string `form:"plate" binding:"required"`
}

type HistoryQuery struct {
	Plate      string `form:"plate" binding:"required"`
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status"`
	LocationID int64  `form:"location"`
}

func (q HistoryQuery) ToQuery() usecase.HistoryQuery {
	return usecase.HistoryQuery{
		Plate:      q.Plate,
		From:       q.From,
		To:         q.To,
		Status:     entities.WorkOrderStatus(q.Status),
		LocationID: q.LocationID,
	}
}

type RangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

func (q RangeQuery) ToRange() usecase.DateRange {
	return usecase.DateRange{From: q.From, To: q.To}
}

type OrdersReportQuery struct {
	RangeQuery
	Plate      string `form:"plate"`
	Status     string `form:"status"`
	LocationID int64  `form:"location_id"`
	Creator    string `form:"creator"`
}

func (q OrdersReportQuery) ToQuery() usecase.OrdersQuery {
	return usecase.OrdersQuery{
		DateRange:  q.ToRange(),
		Plate:      q.Plate,
		Status:     entities.WorkOrderStatus(q.Status),
		LocationID: q.LocationID,
		CreatorRUT: q.Creator,
	}
}
