package reports

import (
	"context"
	"fmt"
	"sort"

	"taller_flota/internal/client/api"
	"taller_flota/internal/domain/entities"

	"golang.org/x/sync/errgroup"
)

type Transport interface {
	ReportSummary(ctx context.Context, from, to string) (api.Summary, error)
	ReportGlobal(ctx context.Context, from, to string) (api.Global, error)
	ReportWorkshops(ctx context.Context, from, to string) ([]api.WorkshopStats, error)
	ReportAverageTimes(ctx context.Context, from, to string) (api.AverageTimes, error)
}

// Dataset is one chart: parallel label and value series.
type Dataset struct {
	Labels []string
	Values []float64
}

type Snapshot struct {
	Summary       api.Summary
	Global        api.Global
	Workshops     []api.WorkshopStats
	AverageTimes  api.AverageTimes
	ByStatus      Dataset
	PendingByShop Dataset
	DaysByShop    Dataset
}

type Dashboard struct {
	client Transport
}

func NewDashboard(client Transport) *Dashboard {
	return &Dashboard{client: client}
}

// Load fetches every report for [from, to] concurrently. Any failure fails
// the whole snapshot.
func (d *Dashboard) Load(ctx context.Context, from, to string) (Snapshot, error) {
	var snap Snapshot
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if snap.Summary, err = d.client.ReportSummary(gCtx, from, to); err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Global, err = d.client.ReportGlobal(gCtx, from, to); err != nil {
			return fmt.Errorf("resumen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Workshops, err = d.client.ReportWorkshops(gCtx, from, to); err != nil {
			return fmt.Errorf("talleres: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.AverageTimes, err = d.client.ReportAverageTimes(gCtx, from, to); err != nil {
			return fmt.Errorf("tiempos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap.ByStatus = statusDataset(snap.Global.ByStatus)
	for _, w := range snap.Workshops {
		snap.PendingByShop.Labels = append(snap.PendingByShop.Labels, w.Name)
		snap.PendingByShop.Values = append(snap.PendingByShop.Values, float64(w.Pending))
	}
	for _, w := range snap.AverageTimes.ByWorkshop {
		snap.DaysByShop.Labels = append(snap.DaysByShop.Labels, w.Name)
		snap.DaysByShop.Values = append(snap.DaysByShop.Values, w.Days)
	}
	return snap, nil
}

// statusDataset orders the known statuses first, in workflow order, then
// any the server added, alphabetically.
func statusDataset(by map[string]int) Dataset {
	var ds Dataset
	seen := make(map[string]bool, len(by))
	for _, s := range entities.AllStatuses {
		seen[string(s)] = true
		ds.Labels = append(ds.Labels, string(s))
		ds.Values = append(ds.Values, float64(by[string(s)]))
	}
	var extra []string
	for k := range by {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		ds.Labels = append(ds.Labels, k)
		ds.Values = append(ds.Values, float64(by[k]))
	}
	return ds
}
