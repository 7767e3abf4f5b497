package usecase

import (
	"context"
	"errors"
	"testing"

	"taller_flota/internal/adapter/persistence/memory"
	"taller_flota/internal/domain/entities"
	mock_interfaces "taller_flota/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newReportFixture(t *testing.T) (*ReportUseCase, *mock_interfaces.MockIReportExporter) {
	t.Helper()
	ctx := context.Background()
	orders := memory.NewWorkOrderRepository(1)
	seed := []entities.WorkOrder{
		{ID: 1, Plate: "AB1234", LocationID: 1, Date: "2024-04-10", ExitDate: "2024-04-14", Status: entities.StatusFinalizado, CreatorRUT: "1-9"},
		{ID: 2, Plate: "CD5678", LocationID: 1, Date: "2024-04-20", Status: entities.StatusEnProceso},
		{ID: 3, Plate: "EF9012", LocationID: 2, Date: "2024-04-21", Status: entities.StatusPendiente},
		{ID: 4, Plate: "EF9012", LocationID: 2, Date: "2024-04-01", ExitDate: "2024-04-02", Status: entities.StatusCancelado},
		{ID: 5, Plate: "GH3456", LocationID: 1, Date: "2023-01-01", ExitDate: "2023-01-30", Status: entities.StatusFinalizado},
	}
	for _, o := range seed {
		_, _ = orders.Create(ctx, o)
	}
	vehicles := memory.NewVehicleRepository(
		entities.Vehicle{Plate: "AB1234", Status: entities.VehicleDisponible},
		entities.Vehicle{Plate: "CD5678", Status: entities.VehicleEnTaller},
	)
	employees := memory.NewEmployeeRepository(
		entities.Employee{RUT: "1-9", Active: true},
		entities.Employee{RUT: "2-7"},
	)
	workshops := memory.NewWorkshopRepository(entities.Workshop{ID: 1, Name: "Santiago"}, entities.Workshop{ID: 2, Name: "Talca"})
	exporter := mock_interfaces.NewMockIReportExporter(gomock.NewController(t))
	uc := NewReportUseCase(orders, vehicles, employees, workshops, exporter, nil)
	uc.now = fixedNow
	return uc, exporter
}

var april = DateRange{From: "2024-04-01", To: "2024-04-30"}

func TestReportUseCase_Summary(t *testing.T) {
	uc, _ := newReportFixture(t)
	s, err := uc.Summary(context.Background(), april)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.VehiclesTotal != 2 || s.VehiclesInWorkshop != 1 || s.ActiveOrders != 2 || s.ActiveEmployees != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestReportUseCase_Orders(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReportFixture(t)

	rows, err := uc.Orders(ctx, OrdersQuery{DateRange: april})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 || rows[0].Order.ID != 3 {
		t.Fatalf("expected 4 rows newest first, got %+v", rows)
	}
	for _, r := range rows {
		switch r.Order.ID {
		case 1:
			if r.DurationDays == nil || *r.DurationDays != 4 {
				t.Fatalf("expected 4 days for order 1, got %v", r.DurationDays)
			}
		case 2, 3:
			if r.DurationDays != nil {
				t.Fatalf("open order %d has duration", r.Order.ID)
			}
		}
	}

	filtered, err := uc.Orders(ctx, OrdersQuery{DateRange: april, LocationID: 1, Status: entities.StatusFinalizado, CreatorRUT: "1-9"})
	if err != nil || len(filtered) != 1 || filtered[0].Order.ID != 1 {
		t.Fatalf("unexpected filtered rows: %+v, %v", filtered, err)
	}

	if _, err := uc.Orders(ctx, OrdersQuery{DateRange: april, Status: "Volando"}); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestReportUseCase_GlobalAndWorkshops(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReportFixture(t)

	g, err := uc.Global(ctx, april)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Total != 4 || g.ByStatus[entities.StatusFinalizado] != 1 || g.ByStatus[entities.StatusNoReparable] != 0 {
		t.Fatalf("unexpected global: %+v", g)
	}
	if len(g.ByStatus) != len(entities.AllStatuses) {
		t.Fatalf("expected every status key, got %d", len(g.ByStatus))
	}
	if g.AverageDays != 2.5 {
		t.Fatalf("expected 2.5 average days, got %v", g.AverageDays)
	}

	stats, err := uc.Workshops(ctx, april)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 workshops, got %d", len(stats))
	}
	if s := stats[0]; s.VehiclesTotal != 2 || s.Pending != 0 || s.InProcess != 1 || s.Finalized != 1 {
		t.Fatalf("unexpected stats for Santiago: %+v", s)
	}
	if s := stats[1]; s.VehiclesTotal != 1 || s.Pending != 1 {
		t.Fatalf("unexpected stats for Talca: %+v", s)
	}
}

func TestReportUseCase_AverageTimes(t *testing.T) {
	uc, _ := newReportFixture(t)
	a, err := uc.AverageTimes(context.Background(), april)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.GlobalDays != 2.5 || len(a.ByWorkshop) != 2 {
		t.Fatalf("unexpected averages: %+v", a)
	}
	if a.ByWorkshop[0].Days != 4 || a.ByWorkshop[0].Orders != 1 || a.ByWorkshop[1].Days != 1 {
		t.Fatalf("unexpected per workshop: %+v", a.ByWorkshop)
	}
}

func TestReportUseCase_ExportOrders(t *testing.T) {
	uc, exporter := newReportFixture(t)

	exporter.EXPECT().ExportOrders(gomock.Len(4)).Return([]byte("xlsx"), nil)
	exporter.EXPECT().ContentType().Return("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	data, contentType, err := uc.ExportOrders(context.Background(), OrdersQuery{DateRange: april})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "xlsx" || contentType == "" {
		t.Fatalf("unexpected export: %q %q", data, contentType)
	}
}

func TestAverager(t *testing.T) {
	var a averager
	if a.value() != 0 {
		t.Fatalf("empty averager should be 0")
	}
	a.add(1)
	a.add(2)
	a.add(2)
	if a.value() != 1.7 {
		t.Fatalf("expected 1.7, got %v", a.value())
	}
}
