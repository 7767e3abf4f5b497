// Package memory implements the repository ports with in-process maps. It
// backs STORAGE_DRIVER=memory and the end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type WorkOrderRepository struct {
	mu     sync.RWMutex
	next   int64
	orders map[int64]entities.WorkOrder
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderRepository)(nil)

// NewWorkOrderRepository returns an empty store whose first allocated id is
// firstID.
func NewWorkOrderRepository(firstID int64) *WorkOrderRepository {
	if firstID < 1 {
		firstID = 1
	}
	return &WorkOrderRepository{
		next:   firstID - 1,
		orders: make(map[int64]entities.WorkOrder),
	}
}

func (r *WorkOrderRepository) NextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next, nil
}

func (r *WorkOrderRepository) Create(ctx context.Context, o entities.WorkOrder) (entities.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[o.ID]; exists {
		return entities.WorkOrder{}, ErrAlreadyExists
	}
	if err := r.reservedBy(o); err != nil {
		return entities.WorkOrder{}, err
	}
	r.orders[o.ID] = clone(o)
	return o, nil
}

// reservedBy reports whether another active order holds o's plate or slot.
// Callers hold mu.
func (r *WorkOrderRepository) reservedBy(o entities.WorkOrder) error {
	if !o.Status.IsActive() {
		return nil
	}
	for _, cur := range r.orders {
		if !cur.Status.IsActive() {
			continue
		}
		if o.Plate != "" && cur.Plate == o.Plate {
			return interfaces.ErrPlateReserved
		}
		if o.Time != "" && cur.LocationID == o.LocationID && cur.Date == o.Date && cur.Time == o.Time {
			return interfaces.ErrSlotReserved
		}
	}
	return nil
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id int64) (entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.orders[id]), nil
}

func (r *WorkOrderRepository) ListByPlate(ctx context.Context, plate string) ([]entities.WorkOrder, error) {
	return r.List(ctx, interfaces.WorkOrderFilter{Plate: plate})
}

func (r *WorkOrderRepository) ListBySlot(ctx context.Context, locationID int64, date string) ([]entities.WorkOrder, error) {
	return r.List(ctx, interfaces.WorkOrderFilter{LocationID: locationID, From: date, To: date})
}

func (r *WorkOrderRepository) List(ctx context.Context, f interfaces.WorkOrderFilter) ([]entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.WorkOrder, 0)
	for _, o := range r.orders {
		if f.Matches(o) {
			out = append(out, clone(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, o entities.WorkOrder, expected entities.WorkOrderStatus) (entities.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.orders[o.ID]
	if !ok || cur.Status != expected {
		return entities.WorkOrder{}, nil
	}
	r.orders[o.ID] = clone(o)
	return o, nil
}

func clone(o entities.WorkOrder) entities.WorkOrder {
	if o.History != nil {
		h := make([]entities.StatusChange, len(o.History))
		copy(h, o.History)
		o.History = h
	}
	return o
}
