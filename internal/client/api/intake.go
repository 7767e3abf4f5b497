package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Intake outcome tags.
const (
	IntakeOK             = "ok"
	IntakeNewDriver      = "nuevo_chofer"
	IntakeVehicleMissing = "vehiculo_no_existe"
)

type VehicleForm struct {
	Brand string
	Model string
	Year  int
	Type  string
}

type DriverForm struct {
	Name     string
	Username string
	Password string
}

// IntakeForm is the ingresos/create payload. Time is optional; Vehicle and
// Driver are only set after the server asked for them.
type IntakeForm struct {
	Plate       string
	Date        string
	Time        string
	LocationID  int64
	Description string
	DriverRUT   string
	Vehicle     *VehicleForm
	Driver      *DriverForm
}

func (f IntakeForm) fields() [][2]string {
	out := [][2]string{
		{"plate", f.Plate},
		{"date", f.Date},
		{"time", f.Time},
		{"location_id", strconv.FormatInt(f.LocationID, 10)},
		{"description", f.Description},
		{"driver_rut", f.DriverRUT},
	}
	if v := f.Vehicle; v != nil {
		year := ""
		if v.Year != 0 {
			year = strconv.Itoa(v.Year)
		}
		out = append(out,
			[2]string{"vehicle_brand", v.Brand},
			[2]string{"vehicle_model", v.Model},
			[2]string{"vehicle_year", year},
			[2]string{"vehicle_type", v.Type})
	}
	if d := f.Driver; d != nil {
		out = append(out,
			[2]string{"driver_name", d.Name},
			[2]string{"driver_username", d.Username},
			[2]string{"driver_password", d.Password})
	}
	return out
}

// IntakeResponse carries the server tag. Order is set only for IntakeOK.
type IntakeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// CreateIntake posts ingresos/create. The sub-form tags come back as a
// response, not an error; any other success:false or non-2xx is a
// *BusinessError.
func (c *Client) CreateIntake(ctx context.Context, form IntakeForm) (IntakeResponse, error) {
	body, contentType, err := multipartBody(form.fields(), nil)
	if err != nil {
		return IntakeResponse{}, fmt.Errorf("encode form: %w", err)
	}
	raw, err := c.send(ctx, http.MethodPost, "ingresos/create", nil, body, contentType)
	if err != nil {
		return IntakeResponse{}, err
	}
	if !raw.ok() {
		return IntakeResponse{}, raw.businessError()
	}
	var out IntakeResponse
	if err := json.Unmarshal(raw.body, &out); err != nil {
		return IntakeResponse{}, fmt.Errorf("%w: decode: %v", ErrCommunication, err)
	}
	return out, nil
}
