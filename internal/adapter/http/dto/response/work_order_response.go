package response

import (
	"time"

	"taller_flota/internal/domain/entities"
)

type StatusChangeResponse struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Comment string    `json:"comment"`
	Author  string    `json:"author"`
	At      time.Time `json:"at"`
}

type WorkOrderResponse struct {
	ID                 int64                  `json:"id"`
	Plate              string                 `json:"plate"`
	LocationID         int64                  `json:"location_id"`
	Date               string                 `json:"date"`
	Time               string                 `json:"time,omitempty"`
	Status             string                 `json:"status"`
	AllowedTransitions []string               `json:"allowed_transitions"`
	Description        string                 `json:"description,omitempty"`
	MechanicRUT        string                 `json:"mechanic_rut,omitempty"`
	CreatorRUT         string                 `json:"creator_rut,omitempty"`
	DriverRUT          string                 `json:"driver_rut,omitempty"`
	ExitDate           string                 `json:"exit_date,omitempty"`
	History            []StatusChangeResponse `json:"history"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func FromWorkOrder(o entities.WorkOrder) WorkOrderResponse {
	allowed := entities.AllowedTransitions(o.Status)
	out := WorkOrderResponse{
		ID:                 o.ID,
		Plate:              o.Plate,
		LocationID:         o.LocationID,
		Date:               o.Date,
		Time:               o.Time,
		Status:             string(o.Status),
		AllowedTransitions: make([]string, 0, len(allowed)),
		Description:        o.Description,
		MechanicRUT:        o.MechanicRUT,
		CreatorRUT:         o.CreatorRUT,
		DriverRUT:          o.DriverRUT,
		ExitDate:           o.ExitDate,
		History:            make([]StatusChangeResponse, 0, len(o.History)),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	for _, s := range allowed {
		out.AllowedTransitions = append(out.AllowedTransitions, string(s))
	}
	for _, h := range o.History {
		out.History = append(out.History, StatusChangeResponse{
			From:    string(h.From),
			To:      string(h.To),
			Comment: h.Comment,
			Author:  h.Author,
			At:      h.At,
		})
	}
	return out
}

func FromWorkOrders(orders []entities.WorkOrder) []WorkOrderResponse {
	out := make([]WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromWorkOrder(o))
	}
	return out
}

type ChangeStatusResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Order   WorkOrderResponse `json:"order"`
}

type WorkOrderListResponse struct {
	Success bool                `json:"success"`
	Items   []WorkOrderResponse `json:"items"`
}
