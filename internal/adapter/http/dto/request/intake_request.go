package request

import (
	"strings"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

// IntakeRequest is the intake form (multipart or urlencoded). The vehicle_*
// and driver_* fields are only sent after the server asked for them.
type IntakeRequest struct {
	Plate       string `form:"plate" binding:"required"`
	Date        string `form:"date" binding:"required"`
	Time        string `form:"time"`
	LocationID  int64  `form:"location_id" binding:"required"`
	Description string `form:"description"`
	DriverRUT   string `form:"driver_rut"`

	VehicleBrand string `form:"vehicle_brand"`
	VehicleModel string `form:"vehicle_model"`
	VehicleYear  int    `form:"vehicle_year"`
	VehicleType  string `form:"vehicle_type"`

	DriverName     string `form:"driver_name"`
	DriverUsername string `form:"driver_username"`
	DriverPassword string `form:"driver_password"`
}

func (r IntakeRequest) ResolveVehicle() *usecase.VehicleData {
	if strings.TrimSpace(r.VehicleBrand) == "" && strings.TrimSpace(r.VehicleModel) == "" {
		return nil
	}
	return &usecase.VehicleData{Brand: r.VehicleBrand, Model: r.VehicleModel, Year: r.VehicleYear, Type: r.VehicleType}
}

func (r IntakeRequest) ResolveDriver() *usecase.DriverData {
	if strings.TrimSpace(r.DriverName) == "" && strings.TrimSpace(r.DriverUsername) == "" {
		return nil
	}
	return &usecase.DriverData{Name: r.DriverName, Username: r.DriverUsername, Password: r.DriverPassword}
}

func (r IntakeRequest) ToCommand(actor entities.Employee) usecase.IntakeCommand {
	return usecase.IntakeCommand{
		Plate:       r.Plate,
		Date:        r.Date,
		Time:        r.Time,
		LocationID:  r.LocationID,
		Description: r.Description,
		DriverRUT:   r.DriverRUT,
		Vehicle:     r.ResolveVehicle(),
		Driver:      r.ResolveDriver(),
		Actor:       actor,
	}
}

type SlotsQuery struct {
	Date       string `form:"date" binding:"required"`
	LocationID int64  `form:"location_id" binding:"required"`
}
