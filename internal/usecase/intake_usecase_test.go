package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"taller_flota/internal/adapter/persistence/memory"
	"taller_flota/internal/domain/entities"
	mock_interfaces "taller_flota/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type intakeFixture struct {
	uc        *IntakeUseCase
	orders    *memory.WorkOrderRepository
	vehicles  *memory.VehicleRepository
	employees *memory.EmployeeRepository
	hasher    *mock_interfaces.MockIPasswordHasher
}

func newIntakeFixture(t *testing.T) intakeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := intakeFixture{
		orders:    memory.NewWorkOrderRepository(101),
		vehicles:  memory.NewVehicleRepository(entities.Vehicle{Plate: "AB1234", Brand: "Toyota", Model: "Hilux", Status: entities.VehicleDisponible}),
		employees: memory.NewEmployeeRepository(supervisor, driver),
		hasher:    mock_interfaces.NewMockIPasswordHasher(ctrl),
	}
	workshops := memory.NewWorkshopRepository(entities.Workshop{ID: 3, Name: "Santiago"})
	f.uc = NewIntakeUseCase(f.orders, f.vehicles, f.employees, workshops, f.hasher, nil)
	f.uc.now = fixedNow
	return f
}

func TestIntakeUseCase_Register_Validation(t *testing.T) {
	ctx := context.Background()
	f := newIntakeFixture(t)

	cases := []struct {
		name string
		cmd  IntakeCommand
		want error
	}{
		{"bad plate", IntakeCommand{Plate: "A", Date: "2024-05-01", LocationID: 3}, ErrInvalidPlate},
		{"bad date", IntakeCommand{Plate: "AB1234", Date: "01/05/2024", LocationID: 3}, ErrInvalidDate},
		{"off grid time", IntakeCommand{Plate: "AB1234", Date: "2024-05-01", Time: "08:30", LocationID: 3}, ErrInvalidTime},
		{"no location", IntakeCommand{Plate: "AB1234", Date: "2024-05-01"}, ErrInvalidLocation},
		{"unknown workshop", IntakeCommand{Plate: "AB1234", Date: "2024-05-01", LocationID: 8}, ErrWorkshopNotFound},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Register(ctx, tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestIntakeUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending order and occupies slot", func(t *testing.T) {
		f := newIntakeFixture(t)
		res, err := f.uc.Register(ctx, IntakeCommand{Plate: "ab-1234", Date: "2024-05-01", Time: "09:00", LocationID: 3, Description: " ruido ", Actor: supervisor})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != IntakeOK || res.Order.ID != 101 || res.Order.Status != entities.StatusPendiente {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Order.Description != "ruido" || res.Order.CreatorRUT != supervisor.RUT {
			t.Fatalf("unexpected order fields: %+v", res.Order)
		}
		v, _ := f.vehicles.Get(ctx, "AB1234")
		if v.Status != entities.VehiclePendiente {
			t.Fatalf("expected vehicle Pendiente, got %s", v.Status)
		}

		_, err = f.uc.Register(ctx, IntakeCommand{Plate: "CD5678", Date: "2024-05-01", Time: "10:00", LocationID: 3, Vehicle: &VehicleData{Brand: "Ford", Model: "Ranger"}, Actor: supervisor})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = f.uc.Register(ctx, IntakeCommand{Plate: "EF9012", Date: "2024-05-01", Time: "10:00", LocationID: 3, Vehicle: &VehicleData{Brand: "Kia", Model: "Rio"}, Actor: supervisor})
		if !errors.Is(err, ErrSlotOccupied) {
			t.Fatalf("expected ErrSlotOccupied, got %v", err)
		}
	})

	t.Run("date only intake", func(t *testing.T) {
		f := newIntakeFixture(t)
		res, err := f.uc.Register(ctx, IntakeCommand{Plate: "AB1234", Date: "2024-05-01", LocationID: 3, Actor: supervisor})
		if err != nil || res.Order.Time != "" || res.Order.Status != entities.StatusPendiente {
			t.Fatalf("unexpected result: %+v, %v", res, err)
		}
	})

	t.Run("active order blocks intake", func(t *testing.T) {
		f := newIntakeFixture(t)
		if _, err := f.uc.Register(ctx, IntakeCommand{Plate: "AB1234", Date: "2024-05-01", Time: "09:00", LocationID: 3, Actor: supervisor}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.uc.Register(ctx, IntakeCommand{Plate: "AB1234", Date: "2024-05-02", Time: "09:00", LocationID: 3, Actor: supervisor})
		var active *ActiveOrderError
		if !errors.As(err, &active) || active.OrderID != 101 {
			t.Fatalf("expected ActiveOrderError for 101, got %v", err)
		}
		if !errors.Is(err, ErrActiveOrderExists) {
			t.Fatalf("expected ErrActiveOrderExists in chain")
		}
	})

	t.Run("unknown vehicle asks for data", func(t *testing.T) {
		f := newIntakeFixture(t)
		res, err := f.uc.Register(ctx, IntakeCommand{Plate: "ZZ9999", Date: "2024-05-01", LocationID: 3, Actor: supervisor})
		if err != nil || res.Outcome != IntakeVehicleMissing || res.Order.ID != 0 {
			t.Fatalf("unexpected result: %+v, %v", res, err)
		}
	})

	t.Run("invalid vehicle data", func(t *testing.T) {
		f := newIntakeFixture(t)
		_, err := f.uc.Register(ctx, IntakeCommand{Plate: "ZZ9999", Date: "2024-05-01", LocationID: 3, Vehicle: &VehicleData{Brand: "Ford"}, Actor: supervisor})
		if !errors.Is(err, ErrInvalidVehicleData) {
			t.Fatalf("expected ErrInvalidVehicleData, got %v", err)
		}
	})

	t.Run("unknown driver asks for data then registers", func(t *testing.T) {
		f := newIntakeFixture(t)
		cmd := IntakeCommand{Plate: "AB1234", Date: "2024-05-01", LocationID: 3, DriverRUT: "55555555-5", Actor: supervisor}
		res, err := f.uc.Register(ctx, cmd)
		if err != nil || res.Outcome != IntakeNewDriver {
			t.Fatalf("unexpected result: %+v, %v", res, err)
		}

		f.hasher.EXPECT().Hash("secreto").Return("hashed", nil)
		cmd.Driver = &DriverData{Name: "Luis", Username: "luis", Password: "secreto"}
		res, err = f.uc.Register(ctx, cmd)
		if err != nil || res.Outcome != IntakeOK {
			t.Fatalf("unexpected result: %+v, %v", res, err)
		}
		e, _ := f.employees.GetByRUT(ctx, "55555555-5")
		if e.Role != entities.RoleChofer || e.PasswordHash != "hashed" || e.WorkshopID != 3 {
			t.Fatalf("unexpected driver: %+v", e)
		}
	})

	t.Run("driver username taken", func(t *testing.T) {
		f := newIntakeFixture(t)
		cmd := IntakeCommand{Plate: "AB1234", Date: "2024-05-01", LocationID: 3, DriverRUT: "55555555-5", Actor: supervisor,
			Driver: &DriverData{Name: "Luis", Username: "taken", Password: "secreto"}}
		_, _ = f.employees.Create(ctx, entities.Employee{RUT: "66666666-6", Username: "taken"})
		_, err := f.uc.Register(ctx, cmd)
		if !errors.Is(err, ErrDriverAlreadyExists) {
			t.Fatalf("expected ErrDriverAlreadyExists, got %v", err)
		}
	})

	t.Run("driver defaults to acting chofer", func(t *testing.T) {
		f := newIntakeFixture(t)
		res, err := f.uc.Register(ctx, IntakeCommand{Plate: "AB1234", Date: "2024-05-01", LocationID: 3, Actor: driver})
		if err != nil || res.Order.CreatorRUT != driver.RUT {
			t.Fatalf("unexpected result: %+v, %v", res, err)
		}
	})
}

// slowOrders widens the window between the read-side checks and Create, the
// way a network round-trip to DynamoDB does.
type slowOrders struct {
	*memory.WorkOrderRepository
}

func (s slowOrders) ListBySlot(ctx context.Context, locationID int64, date string) ([]entities.WorkOrder, error) {
	time.Sleep(5 * time.Millisecond)
	return s.WorkOrderRepository.ListBySlot(ctx, locationID, date)
}

func (s slowOrders) ListByPlate(ctx context.Context, plate string) ([]entities.WorkOrder, error) {
	time.Sleep(5 * time.Millisecond)
	return s.WorkOrderRepository.ListByPlate(ctx, plate)
}

func TestIntakeUseCase_Register_Concurrent(t *testing.T) {
	ctx := context.Background()
	const n = 50

	run := func(t *testing.T, cmd func(i int) IntakeCommand) (*memory.WorkOrderRepository, []error) {
		t.Helper()
		orders := memory.NewWorkOrderRepository(1)
		workshops := memory.NewWorkshopRepository(entities.Workshop{ID: 3, Name: "Santiago"})
		vehicles := memory.NewVehicleRepository(entities.Vehicle{Plate: "AB1234", Brand: "Toyota", Model: "Hilux"})
		uc := NewIntakeUseCase(slowOrders{orders}, vehicles, memory.NewEmployeeRepository(supervisor), workshops, nil, nil)
		uc.now = fixedNow

		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.Register(ctx, cmd(i))
			}(i)
		}
		wg.Wait()
		return orders, errs
	}

	t.Run("one slot is booked once", func(t *testing.T) {
		orders, errs := run(t, func(i int) IntakeCommand {
			return IntakeCommand{
				Plate: fmt.Sprintf("ZZ%04d", i), Date: "2024-05-01", Time: "09:00", LocationID: 3, Actor: supervisor,
				Vehicle: &VehicleData{Brand: "Ford", Model: "Ranger"},
			}
		})
		ok := 0
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case !errors.Is(err, ErrSlotOccupied):
				t.Fatalf("expected ErrSlotOccupied, got %v", err)
			}
		}
		if ok != 1 {
			t.Fatalf("expected exactly one booking, got %d", ok)
		}
		booked, _ := orders.ListBySlot(ctx, 3, "2024-05-01")
		if len(booked) != 1 {
			t.Fatalf("expected one stored order for the slot, got %d", len(booked))
		}
	})

	t.Run("one plate gets one active order", func(t *testing.T) {
		orders, errs := run(t, func(i int) IntakeCommand {
			return IntakeCommand{Plate: "AB1234", Date: fmt.Sprintf("2024-06-%02d", i%28+1), LocationID: 3, Actor: supervisor}
		})
		ok := 0
		for _, err := range errs {
			var active *ActiveOrderError
			switch {
			case err == nil:
				ok++
			case !errors.As(err, &active):
				t.Fatalf("expected ActiveOrderError, got %v", err)
			}
		}
		if ok != 1 {
			t.Fatalf("expected exactly one order, got %d", ok)
		}
		stored, _ := orders.ListByPlate(ctx, "AB1234")
		if len(stored) != 1 {
			t.Fatalf("expected one stored order for the plate, got %d", len(stored))
		}
	})
}

func TestAgendaUseCase_Slots(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewWorkOrderRepository(1)
	_, _ = orders.Create(ctx, entities.WorkOrder{ID: 1, LocationID: 3, Date: "2024-05-01", Time: "09:00", Status: entities.StatusPendiente})
	_, _ = orders.Create(ctx, entities.WorkOrder{ID: 2, LocationID: 3, Date: "2024-05-01", Time: "11:00", Status: entities.StatusCancelado})
	_, _ = orders.Create(ctx, entities.WorkOrder{ID: 3, LocationID: 3, Date: "2024-05-01", Status: entities.StatusPendiente})
	uc := NewAgendaUseCase(orders, memory.NewWorkshopRepository(entities.Workshop{ID: 3}))

	t.Run("marks active bookings", func(t *testing.T) {
		slots, err := uc.Slots(ctx, "2024-05-01", 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 10 || slots[0].Time != "09:00" || slots[9].Time != "18:00" {
			t.Fatalf("unexpected grid: %+v", slots)
		}
		for _, s := range slots {
			if s.Occupied != (s.Time == "09:00") {
				t.Fatalf("slot %s occupied=%v", s.Time, s.Occupied)
			}
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := uc.Slots(ctx, "mañana", 3); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
		if _, err := uc.Slots(ctx, "2024-05-01", 0); !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
		if _, err := uc.Slots(ctx, "2024-05-01", 7); !errors.Is(err, ErrWorkshopNotFound) {
			t.Fatalf("expected ErrWorkshopNotFound, got %v", err)
		}
	})
}
