package response

import (
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

type AccessRecordResponse struct {
	ID            string    `json:"id"`
	Plate         string    `json:"plate"`
	DriverRUT     string    `json:"driver_rut"`
	EntryGuardRUT string    `json:"entry_guard_rut"`
	EntryDate     string    `json:"entry_date"`
	ExitGuardRUT  string    `json:"exit_guard_rut,omitempty"`
	ExitDate      string    `json:"exit_date,omitempty"`
	Forced        bool      `json:"forced"`
	ForcedReason  string    `json:"forced_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromAccessRecord(a entities.AccessRecord) AccessRecordResponse {
	return AccessRecordResponse{
		ID:            a.ID,
		Plate:         a.Plate,
		DriverRUT:     a.DriverRUT,
		EntryGuardRUT: a.EntryGuardRUT,
		EntryDate:     a.EntryDate,
		ExitGuardRUT:  a.ExitGuardRUT,
		ExitDate:      a.ExitDate,
		Forced:        a.Forced,
		ForcedReason:  a.ForcedReason,
		CreatedAt:     a.CreatedAt,
	}
}

type GateStatusResponse struct {
	Success         bool                  `json:"success"`
	Vehicle         VehicleResponse       `json:"vehicle"`
	Inside          bool                  `json:"inside"`
	Open            *AccessRecordResponse `json:"open_record,omitempty"`
	LatestOrder     *WorkOrderResponse    `json:"latest_order,omitempty"`
	ExpectedDrivers []string              `json:"expected_drivers"`
	ExitReleased    bool                  `json:"exit_released"`
}

func FromGateStatus(s usecase.GateStatus) GateStatusResponse {
	out := GateStatusResponse{
		Success:         true,
		Vehicle:         FromVehicle(s.Vehicle),
		Inside:          s.Open != nil,
		ExpectedDrivers: s.ExpectedDrivers,
		ExitReleased:    s.ExitReleased,
	}
	if out.ExpectedDrivers == nil {
		out.ExpectedDrivers = []string{}
	}
	if s.Open != nil {
		rec := FromAccessRecord(*s.Open)
		out.Open = &rec
	}
	if s.LatestOrder != nil {
		o := FromWorkOrder(*s.LatestOrder)
		out.LatestOrder = &o
	}
	return out
}

type GateActionResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Record  AccessRecordResponse `json:"record"`
}

type AccessHistoryResponse struct {
	Success bool                   `json:"success"`
	Items   []AccessRecordResponse `json:"items"`
}

func FromAccessRecords(records []entities.AccessRecord) []AccessRecordResponse {
	out := make([]AccessRecordResponse, 0, len(records))
	for _, a := range records {
		out = append(out, FromAccessRecord(a))
	}
	return out
}
