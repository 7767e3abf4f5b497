package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrWorkOrderNotFound     = errors.New("work order not found")
	ErrInvalidWorkOrderID    = errors.New("invalid work order id")
	ErrCommentRequired       = errors.New("comment required")
	ErrUnknownStatus         = errors.New("unknown status")
	ErrTransitionNotAllowed  = errors.New("transition not allowed")
	ErrConcurrentUpdate      = errors.New("work order changed concurrently")
	ErrMechanicNotFound      = errors.New("mechanic not found")
	ErrMechanicWrongWorkshop = errors.New("mechanic belongs to another workshop")
)

// ChangeStatusCommand identifies the order by ID or, when ID is zero, by the
// vehicle plate (its current active order).
type ChangeStatusCommand struct {
	OrderID int64
	Plate   string
	Status  entities.WorkOrderStatus
	Comment string
	Actor   entities.Employee
}

// IWorkOrderUseCase exposes the work-order lifecycle.
//
//   - POST estado/cambiar => ChangeStatus()
//   - POST ordenes/:id/asignar => Assign()
//   - GET ordenes/pendientes, ordenes/mecanico => ListPendingByWorkshop(), ListForMechanic()
type IWorkOrderUseCase interface {
	ChangeStatus(ctx context.Context, cmd ChangeStatusCommand) (entities.WorkOrder, error)
	Assign(ctx context.Context, orderID int64, mechanicRUT, comment string, actor entities.Employee) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id int64) (entities.WorkOrder, error)
	CurrentByPlate(ctx context.Context, plate string) (entities.WorkOrder, error)
	ListPendingByWorkshop(ctx context.Context, workshopID int64) ([]entities.WorkOrder, error)
	ListForMechanic(ctx context.Context, mechanicRUT string) ([]entities.WorkOrder, error)
}

type WorkOrderUseCase struct {
	orders    interfaces.IWorkOrderRepository
	vehicles  interfaces.IVehicleRepository
	employees interfaces.IEmployeeRepository
	logger    *zap.Logger
	now       func() time.Time
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

func NewWorkOrderUseCase(
	orders interfaces.IWorkOrderRepository,
	vehicles interfaces.IVehicleRepository,
	employees interfaces.IEmployeeRepository,
	logger *zap.Logger,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		orders:    orders,
		vehicles:  vehicles,
		employees: employees,
		logger:    orNop(logger),
		now:       time.Now,
	}
}

func (u *WorkOrderUseCase) ChangeStatus(ctx context.Context, cmd ChangeStatusCommand) (entities.WorkOrder, error) {
	if !cmd.Status.IsKnown() {
		return entities.WorkOrder{}, ErrUnknownStatus
	}
	comment := strings.TrimSpace(cmd.Comment)
	if comment == "" {
		return entities.WorkOrder{}, ErrCommentRequired
	}
	if !cmd.Actor.Role.CanOperateOrders() {
		return entities.WorkOrder{}, ErrForbidden
	}

	var (
		order entities.WorkOrder
		err   error
	)
	if cmd.OrderID > 0 {
		order, err = u.GetByID(ctx, cmd.OrderID)
	} else {
		order, err = u.CurrentByPlate(ctx, cmd.Plate)
	}
	if err != nil {
		return entities.WorkOrder{}, err
	}

	if cmd.Actor.Role == entities.RoleMecanico && order.MechanicRUT != "" && order.MechanicRUT != cmd.Actor.RUT {
		return entities.WorkOrder{}, ErrForbidden
	}

	return u.transition(ctx, order, cmd.Status, comment, cmd.Actor, nil)
}

func (u *WorkOrderUseCase) Assign(ctx context.Context, orderID int64, mechanicRUT, comment string, actor entities.Employee) (entities.WorkOrder, error) {
	if !actor.HasRole(entities.RoleSupervisor, entities.RoleAdmin) {
		return entities.WorkOrder{}, ErrForbidden
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return entities.WorkOrder{}, ErrCommentRequired
	}
	mechanicRUT = strings.TrimSpace(mechanicRUT)
	if mechanicRUT == "" {
		return entities.WorkOrder{}, ErrMechanicNotFound
	}

	order, err := u.GetByID(ctx, orderID)
	if err != nil {
		return entities.WorkOrder{}, err
	}

	mechanic, err := u.employees.GetByRUT(ctx, mechanicRUT)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if mechanic.RUT == "" || mechanic.Role != entities.RoleMecanico || !mechanic.Active {
		return entities.WorkOrder{}, ErrMechanicNotFound
	}
	if mechanic.WorkshopID != order.LocationID {
		return entities.WorkOrder{}, ErrMechanicWrongWorkshop
	}

	return u.transition(ctx, order, entities.StatusEnTaller, comment, actor, func(o *entities.WorkOrder) {
		o.MechanicRUT = mechanic.RUT
	})
}

// transition validates the move against the table, appends the author tag and
// history entry, and writes conditionally on the status read.
func (u *WorkOrderUseCase) transition(
	ctx context.Context,
	order entities.WorkOrder,
	target entities.WorkOrderStatus,
	comment string,
	actor entities.Employee,
	mutate func(*entities.WorkOrder),
) (entities.WorkOrder, error) {
	if !entities.CanTransition(order.Status, target) {
		u.logger.Info("[work_order][usecase] transition rejected",
			zap.Int64("order_id", order.ID),
			zap.String("from", order.Status.String()),
			zap.String("to", target.String()))
		return entities.WorkOrder{}, ErrTransitionNotAllowed
	}

	now := u.now().UTC()
	previous := order.Status

	updated := order
	updated.History = append(append([]entities.StatusChange(nil), order.History...), entities.StatusChange{
		From:      previous,
		To:        target,
		Comment:   comment,
		AuthorRUT: actor.RUT,
		Author:    actor.AuthorTag(),
		At:        now,
	})
	updated.Status = target
	updated.Description = appendLog(order.Description, actor.AuthorTag()+" "+comment)
	updated.UpdatedAt = now
	if target.IsFinal() {
		updated.ExitDate = u.now().Format(entities.DateLayout)
	}
	if mutate != nil {
		mutate(&updated)
	}

	saved, err := u.orders.UpdateStatus(ctx, updated, previous)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if saved.ID == 0 {
		return entities.WorkOrder{}, ErrConcurrentUpdate
	}

	u.syncVehicle(ctx, saved)

	u.logger.Info("[work_order][usecase] status changed",
		zap.Int64("order_id", saved.ID),
		zap.String("plate", saved.Plate),
		zap.String("from", previous.String()),
		zap.String("to", saved.Status.String()),
		zap.String("actor", actor.RUT))
	return saved, nil
}

// syncVehicle mirrors the order status onto the vehicle. Failures are logged;
// the order write already succeeded.
func (u *WorkOrderUseCase) syncVehicle(ctx context.Context, o entities.WorkOrder) {
	var status entities.VehicleStatus
	switch {
	case o.Status.IsFinal():
		status = entities.VehicleDisponible
	case o.Status.InWorkshop():
		status = entities.VehicleEnTaller
	default:
		return
	}
	if err := u.vehicles.UpdateStatus(ctx, o.Plate, status); err != nil {
		u.logger.Warn("[work_order][usecase] vehicle status not updated",
			zap.String("plate", o.Plate), zap.Error(err))
	}
}

func appendLog(description, line string) string {
	if strings.TrimSpace(description) == "" {
		return line
	}
	return description + "\n" + line
}

func (u *WorkOrderUseCase) GetByID(ctx context.Context, id int64) (entities.WorkOrder, error) {
	if id <= 0 {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if o.ID == 0 {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return o, nil
}

func (u *WorkOrderUseCase) CurrentByPlate(ctx context.Context, plate string) (entities.WorkOrder, error) {
	plate, err := resolvePlate(plate)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	orders, err := u.orders.ListByPlate(ctx, plate)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	current, ok := latestActive(orders)
	if !ok {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return current, nil
}

func (u *WorkOrderUseCase) ListPendingByWorkshop(ctx context.Context, workshopID int64) ([]entities.WorkOrder, error) {
	orders, err := u.orders.List(ctx, interfaces.WorkOrderFilter{
		LocationID: workshopID,
		Statuses:   []entities.WorkOrderStatus{entities.StatusPendiente},
	})
	if err != nil {
		return nil, err
	}
	sortOldestFirst(orders)
	return orders, nil
}

func (u *WorkOrderUseCase) ListForMechanic(ctx context.Context, mechanicRUT string) ([]entities.WorkOrder, error) {
	mechanicRUT = strings.TrimSpace(mechanicRUT)
	if mechanicRUT == "" {
		return nil, ErrMechanicNotFound
	}
	orders, err := u.orders.List(ctx, interfaces.WorkOrderFilter{
		MechanicRUT: mechanicRUT,
		Statuses: []entities.WorkOrderStatus{
			entities.StatusRecibida, entities.StatusEnTaller, entities.StatusEnProceso, entities.StatusPausado,
		},
	})
	if err != nil {
		return nil, err
	}
	sortOldestFirst(orders)
	return orders, nil
}
