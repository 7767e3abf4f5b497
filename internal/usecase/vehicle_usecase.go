package usecase

import (
	"context"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

// FichaKPIs are the counters shown on the vehicle record. Incidents and loans
// are not tracked yet and stay at zero.
type FichaKPIs struct {
	Orders    int
	Incidents int
	Loans     int
	Key       string
}

type Ficha struct {
	Plate        string
	Vehicle      *entities.Vehicle
	KPIs         FichaKPIs
	CurrentOrder *entities.WorkOrder
}

type HistoryQuery struct {
	Plate      string
	From       string
	To         string
	Status     entities.WorkOrderStatus
	LocationID int64
}

// IVehicleUseCase backs the vehicle record ("ficha").
type IVehicleUseCase interface {
	Ficha(ctx context.Context, plate string) (Ficha, error)
	History(ctx context.Context, q HistoryQuery) ([]entities.WorkOrder, error)
}

type VehicleUseCase struct {
	vehicles interfaces.IVehicleRepository
	orders   interfaces.IWorkOrderRepository
	now      func() time.Time
}

var _ IVehicleUseCase = (*VehicleUseCase)(nil)

func NewVehicleUseCase(vehicles interfaces.IVehicleRepository, orders interfaces.IWorkOrderRepository) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles, orders: orders, now: time.Now}
}

func (u *VehicleUseCase) Ficha(ctx context.Context, plate string) (Ficha, error) {
	plate, err := resolvePlate(plate)
	if err != nil {
		return Ficha{}, err
	}

	out := Ficha{Plate: plate, KPIs: FichaKPIs{Key: "—"}}

	v, err := u.vehicles.Get(ctx, plate)
	if err != nil {
		return Ficha{}, err
	}
	if v.Plate != "" {
		out.Vehicle = &v
	}

	orders, err := u.orders.ListByPlate(ctx, plate)
	if err != nil {
		return Ficha{}, err
	}
	out.KPIs.Orders = len(orders)
	if current, ok := latestActive(orders); ok {
		out.CurrentOrder = &current
	}
	return out, nil
}

func (u *VehicleUseCase) History(ctx context.Context, q HistoryQuery) ([]entities.WorkOrder, error) {
	plate, err := resolvePlate(q.Plate)
	if err != nil {
		return nil, err
	}
	from, to, err := resolveRange(q.From, q.To, u.now())
	if err != nil {
		return nil, err
	}
	filter := interfaces.WorkOrderFilter{
		Plate:      plate,
		From:       from,
		To:         to,
		LocationID: q.LocationID,
	}
	if q.Status != "" {
		if !q.Status.IsKnown() {
			return nil, ErrUnknownStatus
		}
		filter.Statuses = []entities.WorkOrderStatus{q.Status}
	}

	orders, err := u.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}
