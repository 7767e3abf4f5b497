package entities

import "time"

// AccessRecord is one stay of a vehicle inside the site, opened by the guard
// at the entry gate and closed at exit. Forced marks a gate operation that
// overrode a check; ForcedReason accumulates the reasons given.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI plate-index: plate
type AccessRecord struct {
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

func (a AccessRecord) IsOpen() bool {
	return a.ID != "" && a.ExitDate == ""
}
