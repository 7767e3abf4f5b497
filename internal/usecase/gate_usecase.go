package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrGateDriverRequired  = errors.New("driver rut required")
	ErrGateDriverNotFound  = errors.New("driver not found")
	ErrDriverMismatch      = errors.New("driver does not match the expected driver")
	ErrForceReasonRequired = errors.New("forced gate operation needs a reason")
	ErrAccessAlreadyOpen   = errors.New("vehicle is already inside")
	ErrNoOpenAccess        = errors.New("vehicle has no open entry")
	ErrOrderNotReleased    = errors.New("latest work order does not release the vehicle")
)

// DriverMismatchError lists the drivers the gate expected for the vehicle.
type DriverMismatchError struct {
	Expected []string
}

func (e *DriverMismatchError) Error() string {
	return "expected driver " + strings.Join(e.Expected, " / ")
}

func (e *DriverMismatchError) Unwrap() error { return ErrDriverMismatch }

// OrderNotReleasedError names the order holding the vehicle. OrderID is zero
// when the vehicle has no order at all.
type OrderNotReleasedError struct {
	OrderID int64
	Status  entities.WorkOrderStatus
}

func (e *OrderNotReleasedError) Error() string {
	if e.OrderID == 0 {
		return "vehicle has no work order"
	}
	return fmt.Sprintf("work order #%d is %s", e.OrderID, e.Status)
}

func (e *OrderNotReleasedError) Unwrap() error { return ErrOrderNotReleased }

// GateStatus is what the guard sees after looking a plate up.
type GateStatus struct {
	Vehicle         entities.Vehicle
	Open            *entities.AccessRecord
	LatestOrder     *entities.WorkOrder
	ExpectedDrivers []string
	ExitReleased    bool
}

type EntryCommand struct {
	Plate     string
	DriverRUT string
	Force     bool
	Reason    string
	Guard     entities.Employee
}

type ExitCommand struct {
	Plate  string
	Force  bool
	Reason string
	Guard  entities.Employee
}

// IGateUseCase registers vehicles entering and leaving the site. Exit is
// free only when the latest work order is in a release status; otherwise the
// guard must force it and give a reason.
//
//   - GET control-acceso?plate= => Lookup()
//   - POST control-acceso/entrada => RegisterEntry()
//   - POST control-acceso/salida => RegisterExit()
//   - GET control-acceso/historial?plate= => History()
type IGateUseCase interface {
	Lookup(ctx context.Context, plate string, guard entities.Employee) (GateStatus, error)
	RegisterEntry(ctx context.Context, cmd EntryCommand) (entities.AccessRecord, error)
	RegisterExit(ctx context.Context, cmd ExitCommand) (entities.AccessRecord, error)
	History(ctx context.Context, plate string, guard entities.Employee) ([]entities.AccessRecord, error)
}

type GateUseCase struct {
	access    interfaces.IAccessRepository
	vehicles  interfaces.IVehicleRepository
	orders    interfaces.IWorkOrderRepository
	employees interfaces.IEmployeeRepository
	logger    *zap.Logger
	now       func() time.Time
}

var _ IGateUseCase = (*GateUseCase)(nil)

func NewGateUseCase(
	access interfaces.IAccessRepository,
	vehicles interfaces.IVehicleRepository,
	orders interfaces.IWorkOrderRepository,
	employees interfaces.IEmployeeRepository,
	logger *zap.Logger,
) *GateUseCase {
	return &GateUseCase{
		access:    access,
		vehicles:  vehicles,
		orders:    orders,
		employees: employees,
		logger:    orNop(logger),
		now:       time.Now,
	}
}

func (u *GateUseCase) Lookup(ctx context.Context, plate string, guard entities.Employee) (GateStatus, error) {
	if !guard.Role.CanOperateGate() {
		return GateStatus{}, ErrForbidden
	}
	vehicle, err := u.vehicle(ctx, plate)
	if err != nil {
		return GateStatus{}, err
	}
	orders, err := u.orders.ListByPlate(ctx, vehicle.Plate)
	if err != nil {
		return GateStatus{}, err
	}
	open, err := u.access.OpenByPlate(ctx, vehicle.Plate)
	if err != nil {
		return GateStatus{}, err
	}

	out := GateStatus{Vehicle: vehicle, ExpectedDrivers: expectedDrivers(orders)}
	if open.IsOpen() {
		out.Open = &open
	}
	if latest, ok := latestOrder(orders); ok {
		out.LatestOrder = &latest
		out.ExitReleased = latest.Status.ReleasesVehicle()
	}
	return out, nil
}

func (u *GateUseCase) RegisterEntry(ctx context.Context, cmd EntryCommand) (entities.AccessRecord, error) {
	if !cmd.Guard.Role.CanOperateGate() {
		return entities.AccessRecord{}, ErrForbidden
	}
	vehicle, err := u.vehicle(ctx, cmd.Plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	orders, err := u.orders.ListByPlate(ctx, vehicle.Plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	expected := expectedDrivers(orders)

	driverRUT := strings.TrimSpace(cmd.DriverRUT)
	if driverRUT == "" && len(expected) > 0 {
		driverRUT = expected[0]
	}
	if driverRUT == "" {
		return entities.AccessRecord{}, ErrGateDriverRequired
	}
	driver, err := u.employees.GetByRUT(ctx, driverRUT)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	if driver.RUT == "" {
		return entities.AccessRecord{}, ErrGateDriverNotFound
	}

	open, err := u.access.OpenByPlate(ctx, vehicle.Plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	if open.IsOpen() {
		return entities.AccessRecord{}, ErrAccessAlreadyOpen
	}

	reason := strings.TrimSpace(cmd.Reason)
	mismatch := len(expected) > 0 && !containsString(expected, driver.RUT)
	if mismatch && !cmd.Force {
		return entities.AccessRecord{}, &DriverMismatchError{Expected: expected}
	}
	if mismatch && reason == "" {
		return entities.AccessRecord{}, ErrForceReasonRequired
	}

	now := u.now()
	rec := entities.AccessRecord{
		ID:            uuid.NewString(),
		Plate:         vehicle.Plate,
		DriverRUT:     driver.RUT,
		EntryGuardRUT: cmd.Guard.RUT,
		EntryDate:     now.Format(entities.DateLayout),
		Forced:        cmd.Force || mismatch,
		CreatedAt:     now.UTC(),
	}
	if rec.Forced {
		rec.ForcedReason = reason
	}
	created, err := u.access.Open(ctx, rec)
	if errors.Is(err, interfaces.ErrAccessOpen) {
		return entities.AccessRecord{}, ErrAccessAlreadyOpen
	}
	if err != nil {
		return entities.AccessRecord{}, err
	}

	if err := u.vehicles.UpdateStatus(ctx, vehicle.Plate, entities.VehicleEnRecinto); err != nil {
		u.logger.Warn("[gate][usecase] vehicle status not updated", zap.String("plate", vehicle.Plate), zap.Error(err))
	}
	u.logger.Info("[gate][usecase] entry registered",
		zap.String("plate", vehicle.Plate),
		zap.String("driver", driver.RUT),
		zap.String("guard", cmd.Guard.RUT),
		zap.Bool("forced", created.Forced))
	return created, nil
}

func (u *GateUseCase) RegisterExit(ctx context.Context, cmd ExitCommand) (entities.AccessRecord, error) {
	if !cmd.Guard.Role.CanOperateGate() {
		return entities.AccessRecord{}, ErrForbidden
	}
	vehicle, err := u.vehicle(ctx, cmd.Plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	open, err := u.access.OpenByPlate(ctx, vehicle.Plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	if !open.IsOpen() {
		return entities.AccessRecord{}, ErrNoOpenAccess
	}

	orders, err := u.orders.ListByPlate(ctx, vehicle.Plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	latest, found := latestOrder(orders)
	released := found && latest.Status.ReleasesVehicle()

	reason := strings.TrimSpace(cmd.Reason)
	if !released && !cmd.Force {
		return entities.AccessRecord{}, &OrderNotReleasedError{OrderID: latest.ID, Status: latest.Status}
	}
	if !released && reason == "" {
		return entities.AccessRecord{}, ErrForceReasonRequired
	}

	closed := open
	closed.ExitDate = u.now().Format(entities.DateLayout)
	closed.ExitGuardRUT = cmd.Guard.RUT
	closed.Forced = open.Forced || cmd.Force
	if cmd.Force && reason != "" {
		if strings.TrimSpace(open.ForcedReason) != "" {
			closed.ForcedReason = strings.TrimSpace(open.ForcedReason) + " | SALIDA: " + reason
		} else {
			closed.ForcedReason = reason
		}
	}

	saved, err := u.access.Close(ctx, closed)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	if saved.ID == "" {
		return entities.AccessRecord{}, ErrNoOpenAccess
	}

	if err := u.vehicles.UpdateStatus(ctx, vehicle.Plate, entities.VehicleDisponible); err != nil {
		u.logger.Warn("[gate][usecase] vehicle status not updated", zap.String("plate", vehicle.Plate), zap.Error(err))
	}
	u.logger.Info("[gate][usecase] exit registered",
		zap.String("plate", vehicle.Plate),
		zap.String("guard", cmd.Guard.RUT),
		zap.Bool("released", released),
		zap.Bool("forced", saved.Forced))
	return saved, nil
}

func (u *GateUseCase) History(ctx context.Context, plate string, guard entities.Employee) ([]entities.AccessRecord, error) {
	if !guard.Role.CanOperateGate() {
		return nil, ErrForbidden
	}
	plate, err := resolvePlate(plate)
	if err != nil {
		return nil, err
	}
	return u.access.ListByPlate(ctx, plate)
}

func (u *GateUseCase) vehicle(ctx context.Context, raw string) (entities.Vehicle, error) {
	plate, err := resolvePlate(raw)
	if err != nil {
		return entities.Vehicle{}, err
	}
	v, err := u.vehicles.Get(ctx, plate)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if v.Plate == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

// expectedDrivers returns the driver booked on the vehicle's current order.
func expectedDrivers(orders []entities.WorkOrder) []string {
	current, ok := latestActive(orders)
	if !ok || current.DriverRUT == "" {
		return nil
	}
	return []string{current.DriverRUT}
}

// latestOrder picks the most recent order whatever its status.
func latestOrder(orders []entities.WorkOrder) (entities.WorkOrder, bool) {
	var (
		best  entities.WorkOrder
		found bool
	)
	for _, o := range orders {
		if !found || newer(o, best) {
			best, found = o, true
		}
	}
	return best, found
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
