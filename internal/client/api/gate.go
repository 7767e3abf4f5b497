package api

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

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

// GateStatus is the guard's view of a plate. Open is nil while the vehicle
// is outside.
type GateStatus struct {
	Vehicle         Vehicle       `json:"vehicle"`
	Inside          bool          `json:"inside"`
	Open            *AccessRecord `json:"open_record"`
	LatestOrder     *Order        `json:"latest_order"`
	ExpectedDrivers []string      `json:"expected_drivers"`
	ExitReleased    bool          `json:"exit_released"`
}

// GateRequest is an entry or exit. DriverRUT is ignored on exit.
type GateRequest struct {
	Plate     string
	DriverRUT string
	Force     bool
	Reason    string
}

func (g GateRequest) fields() [][2]string {
	fields := [][2]string{{"plate", g.Plate}, {"driver_rut", g.DriverRUT}, {"reason", g.Reason}}
	if g.Force {
		fields = append(fields, [2]string{"force", strconv.FormatBool(true)})
	}
	return fields
}

type accessRecordResponse struct {
	Record AccessRecord `json:"record"`
}

type accessHistoryResponse struct {
	Items []AccessRecord `json:"items"`
}

func (c *Client) GateLookup(ctx context.Context, plate string) (GateStatus, error) {
	var out GateStatus
	if err := c.getJSON(ctx, "control-acceso", url.Values{"plate": {plate}}, &out); err != nil {
		return GateStatus{}, err
	}
	return out, nil
}

func (c *Client) GateEntry(ctx context.Context, in GateRequest) (AccessRecord, error) {
	var out accessRecordResponse
	if err := c.postForm(ctx, "control-acceso/entrada", in.fields(), nil, &out); err != nil {
		return AccessRecord{}, err
	}
	return out.Record, nil
}

func (c *Client) GateExit(ctx context.Context, in GateRequest) (AccessRecord, error) {
	in.DriverRUT = ""
	var out accessRecordResponse
	if err := c.postForm(ctx, "control-acceso/salida", in.fields(), nil, &out); err != nil {
		return AccessRecord{}, err
	}
	return out.Record, nil
}

func (c *Client) GateHistory(ctx context.Context, plate string) ([]AccessRecord, error) {
	var out accessHistoryResponse
	if err := c.getJSON(ctx, "control-acceso/historial", url.Values{"plate": {plate}}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
