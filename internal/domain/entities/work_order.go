package entities

import (
	"strconv"
	"time"
)

// WorkOrderStatus is the lifecycle status of a work order (OT).
//
// Domain notes:
//   - The backend is the source of truth; clients only read the transition
//     table to decide which options to offer.
//   - Values are the exact strings exchanged with the front-end.
type WorkOrderStatus string

const (
	StatusPendiente    WorkOrderStatus = "Pendiente"
	StatusRecibida     WorkOrderStatus = "Recibida"
	StatusEnTaller     WorkOrderStatus = "En Taller"
	StatusEnProceso    WorkOrderStatus = "En Proceso"
	StatusPausado      WorkOrderStatus = "Pausado"
	StatusFinalizado   WorkOrderStatus = "Finalizado"
	StatusNoReparable  WorkOrderStatus = "No Reparable"
	StatusSinRepuestos WorkOrderStatus = "Sin Repuestos"
	StatusCancelado    WorkOrderStatus = "Cancelado"
)

// AllStatuses lists the vocabulary in lifecycle order (used for report filters).
var AllStatuses = []WorkOrderStatus{
	StatusPendiente,
	StatusRecibida,
	StatusEnTaller,
	StatusEnProceso,
	StatusPausado,
	StatusFinalizado,
	StatusNoReparable,
	StatusSinRepuestos,
	StatusCancelado,
}

// transitions is the canonical table. Statuses missing from it are terminal.
// Pausado never reaches Finalizado directly: work must resume first.
var transitions = map[WorkOrderStatus][]WorkOrderStatus{
	StatusPendiente: {StatusRecibida, StatusEnTaller, StatusCancelado},
	StatusRecibida:  {StatusEnProceso, StatusPausado},
	StatusEnTaller:  {StatusEnProceso, StatusPausado},
	StatusEnProceso: {StatusPausado, StatusFinalizado, StatusNoReparable, StatusSinRepuestos},
	StatusPausado:   {StatusEnTaller, StatusEnProceso, StatusNoReparable, StatusSinRepuestos},
}

// AllowedTransitions returns the ordered targets reachable from current.
// Unknown or terminal statuses yield an empty slice.
func AllowedTransitions(current WorkOrderStatus) []WorkOrderStatus {
	targets := transitions[current]
	out := make([]WorkOrderStatus, len(targets))
	copy(out, targets)
	return out
}

func CanTransition(from, to WorkOrderStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s WorkOrderStatus) String() string { return string(s) }

func (s WorkOrderStatus) IsKnown() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsActive reports whether an order in this status is still the vehicle's
// current order (and holds its intake slot).
func (s WorkOrderStatus) IsActive() bool {
	switch s {
	case StatusPendiente, StatusRecibida, StatusEnTaller, StatusEnProceso, StatusPausado:
		return true
	default:
		return false
	}
}

// IsFinal reports whether reaching this status closes the order.
func (s WorkOrderStatus) IsFinal() bool {
	switch s {
	case StatusFinalizado, StatusNoReparable, StatusSinRepuestos, StatusCancelado:
		return true
	default:
		return false
	}
}

// ReleasesVehicle reports whether the guard may let the vehicle leave the
// site without forcing the exit.
func (s WorkOrderStatus) ReleasesVehicle() bool {
	switch s {
	case StatusFinalizado, StatusNoReparable, StatusSinRepuestos:
		return true
	default:
		return false
	}
}

// InWorkshop reports whether the vehicle is physically in the workshop.
func (s WorkOrderStatus) InWorkshop() bool {
	switch s {
	case StatusRecibida, StatusEnTaller, StatusEnProceso, StatusPausado:
		return true
	default:
		return false
	}
}

// StatusChange is one entry of the order's audit trail.
type StatusChange struct {
	From      WorkOrderStatus `json:"from"`
	To        WorkOrderStatus `json:"to"`
	Comment   string          `json:"comment"`
	AuthorRUT string          `json:"author_rut"`
	Author    string          `json:"author"`
	At        time.Time       `json:"at"`
}

// WorkOrder is the work order (OT) persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (number, allocated from the counters table)
//   - GSI plate-index: plate
//   - GSI slot_key-index: slot_key ("<location_id>#<date>")
//
// Date fields use DateLayout and TimeLayout; Time is empty for date-only
// intake requests.
type WorkOrder struct {
	ID          int64           `json:"id"`
	Plate       string          `json:"plate"`
	LocationID  int64           `json:"location_id"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Status      WorkOrderStatus `json:"status"`
	Description string          `json:"description,omitempty"`
	MechanicRUT string          `json:"mechanic_rut,omitempty"`
	CreatorRUT  string          `json:"creator_rut,omitempty"`
	DriverRUT   string          `json:"driver_rut,omitempty"`
	ExitDate    string          `json:"exit_date,omitempty"`
	History     []StatusChange  `json:"history,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// SlotKey groups orders booked for the same workshop and day.
func SlotKey(locationID int64, date string) string {
	return strconv.FormatInt(locationID, 10) + "#" + date
}

// DurationDays returns the whole days between intake and exit, or false when
// the order is still open or the dates are malformed.
func (o WorkOrder) DurationDays() (int, bool) {
	if o.ExitDate == "" {
		return 0, false
	}
	in, err := time.Parse(DateLayout, o.Date)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(DateLayout, o.ExitDate)
	if err != nil {
		return 0, false
	}
	return int(out.Sub(in).Hours() / 24), true
}
