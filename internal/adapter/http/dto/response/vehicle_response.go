package response

import (
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

type VehicleResponse struct {
	Plate    string `json:"plate"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year,omitempty"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status"`
}

func FromVehicle(v entities.Vehicle) VehicleResponse {
	return VehicleResponse{
		Plate:    v.Plate,
		Brand:    v.Brand,
		Model:    v.Model,
		Year:     v.Year,
		Type:     v.Type,
		Location: v.Location,
		Status:   string(v.Status),
	}
}

type KPIsResponse struct {
	Orders    int    `json:"ots"`
	Incidents int    `json:"incidents"`
	Loans     int    `json:"loans"`
	Key       string `json:"key"`
}

type FichaResponse struct {
	Success      bool               `json:"success"`
	Plate        string             `json:"plate"`
	Vehicle      *VehicleResponse   `json:"vehicle"`
	KPIs         KPIsResponse       `json:"kpis"`
	CurrentOrder *WorkOrderResponse `json:"current_order"`
}

func FromFicha(f usecase.Ficha) FichaResponse {
	out := FichaResponse{
		Success: true,
		Plate:   f.Plate,
		KPIs: KPIsResponse{
			Orders:    f.KPIs.Orders,
			Incidents: f.KPIs.Incidents,
			Loans:     f.KPIs.Loans,
			Key:       f.KPIs.Key,
		},
	}
	if f.Vehicle != nil {
		v := FromVehicle(*f.Vehicle)
		out.Vehicle = &v
	}
	if f.CurrentOrder != nil {
		o := FromWorkOrder(*f.CurrentOrder)
		out.CurrentOrder = &o
	}
	return out
}
