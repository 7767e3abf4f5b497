package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type DateRange struct {
	From string
	To   string
}

type ReportSummary struct {
	From               string
	To                 string
	VehiclesTotal      int
	VehiclesInWorkshop int
	ActiveOrders       int
	ActiveEmployees    int
}

type OrdersQuery struct {
	DateRange
	Plate      string
	Status     entities.WorkOrderStatus
	LocationID int64
	CreatorRUT string
}

// OrderReportRow is one listing line; DurationDays is nil while the order is
// still open.
type OrderReportRow struct {
	Order        entities.WorkOrder
	DurationDays *int
}

type GlobalSummary struct {
	From        string
	To          string
	Total       int
	ByStatus    map[entities.WorkOrderStatus]int
	AverageDays float64
}

type WorkshopStats struct {
	WorkshopID    int64
	Name          string
	VehiclesTotal int
	Pending       int
	InProcess     int
	Finalized     int
}

type WorkshopAverage struct {
	WorkshopID int64
	Name       string
	Orders     int
	Days       float64
}

type AverageTimes struct {
	From       string
	To         string
	GlobalDays float64
	ByWorkshop []WorkshopAverage
}

// IReportUseCase aggregates work orders for the reporting dashboard.
type IReportUseCase interface {
	Summary(ctx context.Context, r DateRange) (ReportSummary, error)
	Orders(ctx context.Context, q OrdersQuery) ([]OrderReportRow, error)
	Global(ctx context.Context, r DateRange) (GlobalSummary, error)
	Workshops(ctx context.Context, r DateRange) ([]WorkshopStats, error)
	AverageTimes(ctx context.Context, r DateRange) (AverageTimes, error)
	ExportOrders(ctx context.Context, q OrdersQuery) ([]byte, string, error)
}

type ReportUseCase struct {
	orders    interfaces.IWorkOrderRepository
	vehicles  interfaces.IVehicleRepository
	employees interfaces.IEmployeeRepository
	workshops interfaces.IWorkshopRepository
	exporter  interfaces.IReportExporter
	logger    *zap.Logger
	now       func() time.Time
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(
	orders interfaces.IWorkOrderRepository,
	vehicles interfaces.IVehicleRepository,
	employees interfaces.IEmployeeRepository,
	workshops interfaces.IWorkshopRepository,
	exporter interfaces.IReportExporter,
	logger *zap.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		orders:    orders,
		vehicles:  vehicles,
		employees: employees,
		workshops: workshops,
		exporter:  exporter,
		logger:    orNop(logger),
		now:       time.Now,
	}
}

func (u *ReportUseCase) Summary(ctx context.Context, r DateRange) (ReportSummary, error) {
	from, to, err := resolveRange(r.From, r.To, u.now())
	if err != nil {
		return ReportSummary{}, err
	}
	out := ReportSummary{From: from, To: to}

	vehicles, err := u.vehicles.List(ctx)
	if err != nil {
		return ReportSummary{}, err
	}
	out.VehiclesTotal = len(vehicles)
	for _, v := range vehicles {
		if v.Status == entities.VehicleEnTaller {
			out.VehiclesInWorkshop++
		}
	}

	orders, err := u.orders.List(ctx, interfaces.WorkOrderFilter{From: from, To: to})
	if err != nil {
		return ReportSummary{}, err
	}
	for _, o := range orders {
		if o.Status.IsActive() {
			out.ActiveOrders++
		}
	}

	employees, err := u.employees.List(ctx)
	if err != nil {
		return ReportSummary{}, err
	}
	for _, e := range employees {
		if e.Active {
			out.ActiveEmployees++
		}
	}
	return out, nil
}

func (u *ReportUseCase) Orders(ctx context.Context, q OrdersQuery) ([]OrderReportRow, error) {
	orders, err := u.listOrders(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([]OrderReportRow, 0, len(orders))
	for _, o := range orders {
		row := OrderReportRow{Order: o}
		if d, ok := o.DurationDays(); ok {
			row.DurationDays = &d
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (u *ReportUseCase) listOrders(ctx context.Context, q OrdersQuery) ([]entities.WorkOrder, error) {
	from, to, err := resolveRange(q.From, q.To, u.now())
	if err != nil {
		return nil, err
	}
	filter := interfaces.WorkOrderFilter{
		From:       from,
		To:         to,
		LocationID: q.LocationID,
		CreatorRUT: strings.TrimSpace(q.CreatorRUT),
	}
	if strings.TrimSpace(q.Plate) != "" {
		plate, err := resolvePlate(q.Plate)
		if err != nil {
			return nil, err
		}
		filter.Plate = plate
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

func (u *ReportUseCase) Global(ctx context.Context, r DateRange) (GlobalSummary, error) {
	from, to, err := resolveRange(r.From, r.To, u.now())
	if err != nil {
		return GlobalSummary{}, err
	}
	orders, err := u.orders.List(ctx, interfaces.WorkOrderFilter{From: from, To: to})
	if err != nil {
		return GlobalSummary{}, err
	}

	out := GlobalSummary{From: from, To: to, Total: len(orders), ByStatus: make(map[entities.WorkOrderStatus]int, len(entities.AllStatuses))}
	for _, s := range entities.AllStatuses {
		out.ByStatus[s] = 0
	}
	var avg averager
	for _, o := range orders {
		out.ByStatus[o.Status]++
		if d, ok := o.DurationDays(); ok {
			avg.add(d)
		}
	}
	out.AverageDays = avg.value()
	return out, nil
}

func (u *ReportUseCase) Workshops(ctx context.Context, r DateRange) ([]WorkshopStats, error) {
	from, to, err := resolveRange(r.From, r.To, u.now())
	if err != nil {
		return nil, err
	}
	workshops, err := u.workshops.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := u.orders.List(ctx, interfaces.WorkOrderFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	out := make([]WorkshopStats, 0, len(workshops))
	for _, w := range workshops {
		stats := WorkshopStats{WorkshopID: w.ID, Name: w.Name}
		plates := make(map[string]bool)
		for _, o := range orders {
			if o.LocationID != w.ID {
				continue
			}
			plates[o.Plate] = true
			switch {
			case o.Status == entities.StatusPendiente:
				stats.Pending++
			case o.Status.InWorkshop():
				stats.InProcess++
			case o.Status == entities.StatusFinalizado:
				stats.Finalized++
			}
		}
		stats.VehiclesTotal = len(plates)
		out = append(out, stats)
	}
	return out, nil
}

func (u *ReportUseCase) AverageTimes(ctx context.Context, r DateRange) (AverageTimes, error) {
	from, to, err := resolveRange(r.From, r.To, u.now())
	if err != nil {
		return AverageTimes{}, err
	}
	workshops, err := u.workshops.List(ctx)
	if err != nil {
		return AverageTimes{}, err
	}
	orders, err := u.orders.List(ctx, interfaces.WorkOrderFilter{From: from, To: to})
	if err != nil {
		return AverageTimes{}, err
	}

	var global averager
	per := make(map[int64]*averager, len(workshops))
	for _, w := range workshops {
		per[w.ID] = &averager{}
	}
	for _, o := range orders {
		d, ok := o.DurationDays()
		if !ok {
			continue
		}
		global.add(d)
		if a, found := per[o.LocationID]; found {
			a.add(d)
		}
	}

	out := AverageTimes{From: from, To: to, GlobalDays: global.value(), ByWorkshop: make([]WorkshopAverage, 0, len(workshops))}
	for _, w := range workshops {
		a := per[w.ID]
		out.ByWorkshop = append(out.ByWorkshop, WorkshopAverage{WorkshopID: w.ID, Name: w.Name, Orders: a.n, Days: a.value()})
	}
	return out, nil
}

func (u *ReportUseCase) ExportOrders(ctx context.Context, q OrdersQuery) ([]byte, string, error) {
	orders, err := u.listOrders(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := u.exporter.ExportOrders(orders)
	if err != nil {
		return nil, "", err
	}
	u.logger.Info("[report][usecase] orders exported", zap.Int("rows", len(orders)))
	return data, u.exporter.ContentType(), nil
}

type averager struct {
	sum int
	n   int
}

func (a *averager) add(days int) {
	a.sum += days
	a.n++
}

// value rounds to one decimal; zero when nothing was added.
func (a *averager) value() float64 {
	if a.n == 0 {
		return 0
	}
	return math.Round(float64(a.sum)/float64(a.n)*10) / 10
}
