package ficha

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taller_flota/internal/client/api"
	"taller_flota/internal/client/workorder"
	"taller_flota/internal/domain/entities"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Transport interface {
	workorder.Transport
	Ficha(ctx context.Context, plate string) (api.Ficha, error)
	History(ctx context.Context, f api.HistoryFilter) ([]api.Order, error)
}

type Filter struct {
	From     string
	To       string
	Status   string
	Location int64
}

// Snapshot is what the vehicle record screen shows. Panel is nil when the
// vehicle has no current order.
type Snapshot struct {
	Ficha   api.Ficha
	History []api.Order
	Panel   *workorder.Panel
}

// View loads a vehicle record and keeps it in sync with the status panel of
// its current order.
type View struct {
	client Transport
	dialog workorder.Dialog
	logger *zap.Logger

	mu       sync.Mutex
	plate    string
	filter   Filter
	snapshot Snapshot
}

func NewView(client Transport, dialog workorder.Dialog, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{client: client, dialog: dialog, logger: logger}
}

// Load fetches the summary and the filtered history in parallel.
func (v *View) Load(ctx context.Context, plate string, f Filter) (Snapshot, error) {
	plate = entities.NormalizePlate(plate)
	if !entities.ValidPlate(plate) {
		return Snapshot{}, fmt.Errorf("patente inválida: %q", plate)
	}

	var (
		summary api.Ficha
		history []api.Order
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = v.client.Ficha(gCtx, plate)
		if err != nil {
			return fmt.Errorf("ficha: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = v.client.History(gCtx, api.HistoryFilter{
			Plate:    plate,
			From:     strings.TrimSpace(f.From),
			To:       strings.TrimSpace(f.To),
			Status:   strings.TrimSpace(f.Status),
			Location: f.Location,
		})
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Ficha: summary, History: history}
	if o := summary.CurrentOrder; o != nil {
		snap.Panel = workorder.FromOrder(v.client, *o,
			workorder.WithDialog(v.dialog),
			workorder.WithLogger(v.logger),
			workorder.WithRefresher(workorder.RefresherFunc(v.Refresh)))
	}

	v.mu.Lock()
	v.plate, v.filter, v.snapshot = plate, f, snap
	v.mu.Unlock()
	return snap, nil
}

// Refresh reloads the last plate with the last filter.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	plate, f := v.plate, v.filter
	v.mu.Unlock()
	if plate == "" {
		return nil
	}
	_, err := v.Load(ctx, plate, f)
	return err
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}
