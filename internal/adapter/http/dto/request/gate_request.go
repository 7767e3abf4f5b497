package request

import (
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

type GateEntryRequest struct {
	Plate     string `form:"plate" json:"plate" binding:"required"`
	DriverRUT string `form:"driver_rut" json:"driver_rut"`
	Force     bool   `form:"force" json:"force"`
	Reason    string `form:"reason" json:"reason"`
}

func (r GateEntryRequest) ToCommand(guard entities.Employee) usecase.EntryCommand {
	return usecase.EntryCommand{Plate: r.Plate, DriverRUT: r.DriverRUT, Force: r.Force, Reason: r.Reason, Guard: guard}
}

type GateExitRequest struct {
	Plate  string `form:"plate" json:"plate" binding:"required"`
	Force  bool   `form:"force" json:"force"`
	Reason string `form:"reason" json:"reason"`
}

func (r GateExitRequest) ToCommand(guard entities.Employee) usecase.ExitCommand {
	return usecase.ExitCommand{Plate: r.Plate, Force: r.Force, Reason: r.Reason, Guard: guard}
}
