package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidTime         = errors.New("invalid time")
	ErrInvalidLocation     = errors.New("invalid location")
	ErrWorkshopNotFound    = errors.New("workshop not found")
	ErrSlotOccupied        = errors.New("slot occupied")
	ErrActiveOrderExists   = errors.New("vehicle already has an active work order")
	ErrInvalidVehicleData  = errors.New("invalid vehicle data")
	ErrInvalidDriverData   = errors.New("invalid driver data")
	ErrDriverAlreadyExists = errors.New("driver already exists")
)

// ActiveOrderError carries the id of the order blocking a new intake.
type ActiveOrderError struct {
	OrderID int64
}

func (e *ActiveOrderError) Error() string {
	return fmt.Sprintf("vehicle already has active work order #%d", e.OrderID)
}

func (e *ActiveOrderError) Unwrap() error { return ErrActiveOrderExists }

// IntakeOutcome is the tag returned to the intake form.
type IntakeOutcome string

const (
	IntakeOK             IntakeOutcome = "ok"
	IntakeNewDriver      IntakeOutcome = "nuevo_chofer"
	IntakeVehicleMissing IntakeOutcome = "vehiculo_no_existe"
)

type VehicleData struct {
	Brand string
	Model string
	Year  int
	Type  string
}

type DriverData struct {
	Name     string
	Username string
	Password string
}

type IntakeCommand struct {
	Plate       string
	Date        string
	Time        string
	LocationID  int64
	Description string
	DriverRUT   string
	Vehicle     *VehicleData
	Driver      *DriverData
	Actor       entities.Employee
}

type IntakeResult struct {
	Outcome IntakeOutcome
	Order   entities.WorkOrder
}

// IIntakeUseCase registers a vehicle arrival as a Pendiente work order.
type IIntakeUseCase interface {
	Register(ctx context.Context, cmd IntakeCommand) (IntakeResult, error)
}

type IntakeUseCase struct {
	orders    interfaces.IWorkOrderRepository
	vehicles  interfaces.IVehicleRepository
	employees interfaces.IEmployeeRepository
	workshops interfaces.IWorkshopRepository
	hasher    interfaces.IPasswordHasher
	logger    *zap.Logger
	now       func() time.Time
}

var _ IIntakeUseCase = (*IntakeUseCase)(nil)

func NewIntakeUseCase(
	orders interfaces.IWorkOrderRepository,
	vehicles interfaces.IVehicleRepository,
	employees interfaces.IEmployeeRepository,
	workshops interfaces.IWorkshopRepository,
	hasher interfaces.IPasswordHasher,
	logger *zap.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{
		orders:    orders,
		vehicles:  vehicles,
		employees: employees,
		workshops: workshops,
		hasher:    hasher,
		logger:    orNop(logger),
		now:       time.Now,
	}
}

func (u *IntakeUseCase) Register(ctx context.Context, cmd IntakeCommand) (IntakeResult, error) {
	plate, err := resolvePlate(cmd.Plate)
	if err != nil {
		return IntakeResult{}, err
	}
	date := strings.TrimSpace(cmd.Date)
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		return IntakeResult{}, ErrInvalidDate
	}
	slotTime := strings.TrimSpace(cmd.Time)
	if slotTime != "" && !isSlotTime(slotTime) {
		return IntakeResult{}, ErrInvalidTime
	}
	if cmd.LocationID <= 0 {
		return IntakeResult{}, ErrInvalidLocation
	}
	workshop, err := u.workshops.GetByID(ctx, cmd.LocationID)
	if err != nil {
		return IntakeResult{}, err
	}
	if workshop.ID == 0 {
		return IntakeResult{}, ErrWorkshopNotFound
	}

	vehicle, err := u.vehicles.Get(ctx, plate)
	if err != nil {
		return IntakeResult{}, err
	}
	if vehicle.Plate == "" && cmd.Vehicle == nil {
		return IntakeResult{Outcome: IntakeVehicleMissing}, nil
	}

	driverRUT := strings.TrimSpace(cmd.DriverRUT)
	if driverRUT == "" && cmd.Actor.Role == entities.RoleChofer {
		driverRUT = cmd.Actor.RUT
	}
	var driver entities.Employee
	if driverRUT != "" {
		driver, err = u.employees.GetByRUT(ctx, driverRUT)
		if err != nil {
			return IntakeResult{}, err
		}
		if driver.RUT == "" && cmd.Driver == nil {
			return IntakeResult{Outcome: IntakeNewDriver}, nil
		}
	}

	existing, err := u.orders.ListByPlate(ctx, plate)
	if err != nil {
		return IntakeResult{}, err
	}
	if active, ok := latestActive(existing); ok {
		return IntakeResult{}, &ActiveOrderError{OrderID: active.ID}
	}
	if slotTime != "" {
		booked, err := u.orders.ListBySlot(ctx, cmd.LocationID, date)
		if err != nil {
			return IntakeResult{}, err
		}
		if occupiedTimes(booked)[slotTime] {
			return IntakeResult{}, ErrSlotOccupied
		}
	}

	if vehicle.Plate == "" {
		if vehicle, err = u.registerVehicle(ctx, plate, workshop, *cmd.Vehicle); err != nil {
			return IntakeResult{}, err
		}
	}
	if driverRUT != "" && driver.RUT == "" {
		if _, err = u.registerDriver(ctx, driverRUT, cmd.LocationID, *cmd.Driver); err != nil {
			return IntakeResult{}, err
		}
	}

	id, err := u.orders.NextID(ctx)
	if err != nil {
		return IntakeResult{}, err
	}
	now := u.now().UTC()
	creator := cmd.Actor.RUT
	if creator == "" {
		creator = driverRUT
	}
	order := entities.WorkOrder{
		ID:          id,
		Plate:       plate,
		LocationID:  cmd.LocationID,
		Date:        date,
		Time:        slotTime,
		Status:      entities.StatusPendiente,
		Description: strings.TrimSpace(cmd.Description),
		CreatorRUT:  creator,
		DriverRUT:   driverRUT,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.orders.Create(ctx, order)
	switch {
	case errors.Is(err, interfaces.ErrSlotReserved):
		u.logger.Info("[intake][usecase] slot taken concurrently",
			zap.Int64("location_id", cmd.LocationID), zap.String("date", date), zap.String("time", slotTime))
		return IntakeResult{}, ErrSlotOccupied
	case errors.Is(err, interfaces.ErrPlateReserved):
		return IntakeResult{}, u.activeOrderConflict(ctx, plate)
	case err != nil:
		return IntakeResult{}, err
	}

	if err := u.vehicles.UpdateStatus(ctx, plate, entities.VehiclePendiente); err != nil {
		u.logger.Warn("[intake][usecase] vehicle status not updated", zap.String("plate", plate), zap.Error(err))
	}

	u.logger.Info("[intake][usecase] work order created",
		zap.Int64("order_id", created.ID),
		zap.String("plate", plate),
		zap.Int64("location_id", cmd.LocationID),
		zap.String("date", date),
		zap.String("time", slotTime))
	return IntakeResult{Outcome: IntakeOK, Order: created}, nil
}

// activeOrderConflict names the order that won a concurrent intake for plate.
func (u *IntakeUseCase) activeOrderConflict(ctx context.Context, plate string) error {
	orders, err := u.orders.ListByPlate(ctx, plate)
	if err != nil {
		return err
	}
	if active, ok := latestActive(orders); ok {
		return &ActiveOrderError{OrderID: active.ID}
	}
	return ErrActiveOrderExists
}

func (u *IntakeUseCase) registerVehicle(ctx context.Context, plate string, workshop entities.Workshop, data VehicleData) (entities.Vehicle, error) {
	if strings.TrimSpace(data.Brand) == "" || strings.TrimSpace(data.Model) == "" {
		return entities.Vehicle{}, ErrInvalidVehicleData
	}
	if data.Year != 0 && (data.Year < 1950 || data.Year > u.now().Year()+1) {
		return entities.Vehicle{}, ErrInvalidVehicleData
	}
	v := entities.Vehicle{
		Plate:    plate,
		Brand:    strings.TrimSpace(data.Brand),
		Model:    strings.TrimSpace(data.Model),
		Year:     data.Year,
		Type:     strings.TrimSpace(data.Type),
		Location: workshop.Name,
		Status:   entities.VehicleDisponible,
	}
	created, err := u.vehicles.Create(ctx, v)
	if err != nil {
		return entities.Vehicle{}, err
	}
	u.logger.Info("[intake][usecase] vehicle registered", zap.String("plate", plate))
	return created, nil
}

func (u *IntakeUseCase) registerDriver(ctx context.Context, rut string, workshopID int64, data DriverData) (entities.Employee, error) {
	name := strings.TrimSpace(data.Name)
	username := strings.TrimSpace(data.Username)
	if name == "" || username == "" || len(data.Password) < 6 {
		return entities.Employee{}, ErrInvalidDriverData
	}
	taken, err := u.employees.GetByUsername(ctx, username)
	if err != nil {
		return entities.Employee{}, err
	}
	if taken.RUT != "" {
		return entities.Employee{}, ErrDriverAlreadyExists
	}
	hash, err := u.hasher.Hash(data.Password)
	if err != nil {
		return entities.Employee{}, err
	}
	e := entities.Employee{
		RUT:          rut,
		Name:         name,
		Role:         entities.RoleChofer,
		Username:     username,
		PasswordHash: hash,
		WorkshopID:   workshopID,
		Active:       true,
	}
	created, err := u.employees.Create(ctx, e)
	if err != nil {
		return entities.Employee{}, err
	}
	u.logger.Info("[intake][usecase] driver registered", zap.String("rut", rut))
	return created, nil
}

func isSlotTime(t string) bool {
	for _, s := range entities.DaySlots(nil) {
		if s.Time == t {
			return true
		}
	}
	return false
}

// occupiedTimes returns the slot times held by active orders.
func occupiedTimes(orders []entities.WorkOrder) map[string]bool {
	out := make(map[string]bool)
	for _, o := range orders {
		if o.Time != "" && o.Status.IsActive() {
			out[o.Time] = true
		}
	}
	return out
}
