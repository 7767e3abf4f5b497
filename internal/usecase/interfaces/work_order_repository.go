package interfaces

import (
	"context"
	"errors"

	"taller_flota/internal/domain/entities"
)

// Create rejects an active order whose intake slot or plate is already held
// by another active order. Stores check both in the same atomic step as the
// insert.
var (
	ErrSlotReserved  = errors.New("slot already reserved by an active work order")
	ErrPlateReserved = errors.New("plate already has an active work order")
)

// WorkOrderFilter narrows List. Zero values mean "no filter"; From and To are
// inclusive DateLayout dates.
type WorkOrderFilter struct {
	Plate       string
	From        string
	To          string
	Statuses    []entities.WorkOrderStatus
	LocationID  int64
	CreatorRUT  string
	MechanicRUT string
}

// Matches applies the filter to one order. Adapters use it for whatever they
// cannot push down to the store.
func (f WorkOrderFilter) Matches(o entities.WorkOrder) bool {
	if f.Plate != "" && o.Plate != f.Plate {
		return false
	}
	if f.From != "" && o.Date < f.From {
		return false
	}
	if f.To != "" && o.Date > f.To {
		return false
	}
	if f.LocationID != 0 && o.LocationID != f.LocationID {
		return false
	}
	if f.CreatorRUT != "" && o.CreatorRUT != f.CreatorRUT {
		return false
	}
	if f.MechanicRUT != "" && o.MechanicRUT != f.MechanicRUT {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
//
// Lookups return a zero WorkOrder (ID == 0) and a nil error when nothing
// matches. Create fails with ErrSlotReserved or ErrPlateReserved on a
// conflicting active order. UpdateStatus writes only if the stored status
// still equals expected; otherwise it returns a zero WorkOrder. Leaving the
// active set frees the slot and the plate.
type IWorkOrderRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, o entities.WorkOrder) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id int64) (entities.WorkOrder, error)
	ListByPlate(ctx context.Context, plate string) ([]entities.WorkOrder, error)
	ListBySlot(ctx context.Context, locationID int64, date string) ([]entities.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) ([]entities.WorkOrder, error)
	UpdateStatus(ctx context.Context, o entities.WorkOrder, expected entities.WorkOrderStatus) (entities.WorkOrder, error)
}
