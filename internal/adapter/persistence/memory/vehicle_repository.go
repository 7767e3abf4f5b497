package memory

import (
	"context"
	"sort"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type VehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]entities.Vehicle
}

var _ interfaces.IVehicleRepository = (*VehicleRepository)(nil)

func NewVehicleRepository(seed ...entities.Vehicle) *VehicleRepository {
	r := &VehicleRepository{vehicles: make(map[string]entities.Vehicle)}
	for _, v := range seed {
		r.vehicles[v.Plate] = v
	}
	return r
}

func (r *VehicleRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.vehicles[v.Plate]; exists {
		return entities.Vehicle{}, ErrAlreadyExists
	}
	r.vehicles[v.Plate] = v
	return v, nil
}

func (r *VehicleRepository) Get(ctx context.Context, plate string) (entities.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vehicles[plate], nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]entities.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, plate string, status entities.VehicleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[plate]
	if !ok {
		return nil
	}
	v.Status = status
	r.vehicles[plate] = v
	return nil
}
