package response

import (
	"taller_flota/internal/domain/entities"
)

type SlotResponse struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

type SlotsResponse struct {
	Success bool           `json:"success"`
	Slots   []SlotResponse `json:"slots"`
}

func FromSlots(slots []entities.Slot) SlotsResponse {
	out := SlotsResponse{Success: true, Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		out.Slots = append(out.Slots, SlotResponse{Time: s.Time, Occupied: s.Occupied})
	}
	return out
}

// IntakeResponse carries the outcome tag; Order is set only for "ok".
type IntakeResponse struct {
	Success bool               `json:"success"`
	Status  string             `json:"status"`
	Message string             `json:"message,omitempty"`
	Order   *WorkOrderResponse `json:"order,omitempty"`
}
