package interfaces

import (
	"context"
	"taller_flota/internal/domain/entities"
)

// IVehicleRepository abstracts persistence for Vehicle. Get returns a zero
// Vehicle when the plate is unknown.
type IVehicleRepository interface {
	Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error)
	Get(ctx context.Context, plate string) (entities.Vehicle, error)
	List(ctx context.Context) ([]entities.Vehicle, error)
	UpdateStatus(ctx context.Context, plate string, status entities.VehicleStatus) error
}
