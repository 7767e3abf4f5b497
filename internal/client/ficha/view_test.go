package ficha

import (
	"context"
	"errors"
	"sync"
	"testing"

	"taller_flota/internal/client/api"
	"taller_flota/internal/client/workorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu         sync.Mutex
	status     string
	fichaCalls int
	filters    []api.HistoryFilter
	historyErr error
}

func (f *fakeTransport) Ficha(_ context.Context, plate string) (api.Ficha, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fichaCalls++
	out := api.Ficha{Plate: plate, Vehicle: &api.Vehicle{Plate: plate, Brand: "Ford"}}
	if f.status != "" {
		out.CurrentOrder = &api.Order{ID: 101, Plate: plate, Status: f.status}
	}
	return out, nil
}

func (f *fakeTransport) History(_ context.Context, filter api.HistoryFilter) ([]api.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return []api.Order{{ID: 101}, {ID: 90}}, nil
}

func (f *fakeTransport) ChangeStatus(_ context.Context, _, status, _ string) (*api.Order, error) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
	return &api.Order{ID: 101, Status: status}, nil
}

func TestView_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid plate", func(t *testing.T) {
		tr := &fakeTransport{}
		_, err := NewView(tr, nil, nil).Load(ctx, "?", Filter{})
		assert.Error(t, err)
		assert.Zero(t, tr.fichaCalls)
	})

	t.Run("without current order there is no panel", func(t *testing.T) {
		tr := &fakeTransport{}
		snap, err := NewView(tr, nil, nil).Load(ctx, "ab-1234", Filter{From: " 2024-04-01 ", Status: "Finalizado", Location: 3})
		require.NoError(t, err)
		assert.Nil(t, snap.Panel)
		assert.Len(t, snap.History, 2)
		assert.Equal(t, api.HistoryFilter{Plate: "AB1234", From: "2024-04-01", Status: "Finalizado", Location: 3}, tr.filters[0])
	})

	t.Run("history failure fails the load", func(t *testing.T) {
		tr := &fakeTransport{historyErr: errors.New("boom")}
		_, err := NewView(tr, nil, nil).Load(ctx, "AB1234", Filter{})
		assert.ErrorContains(t, err, "history")
	})
}

func TestView_PanelRefreshesRecord(t *testing.T) {
	ctx := context.Background()
	tr := &fakeTransport{status: "En Proceso"}
	v := NewView(tr, nil, nil)

	snap, err := v.Load(ctx, "AB1234", Filter{Status: "Pausado"})
	require.NoError(t, err)
	require.NotNil(t, snap.Panel)
	assert.Contains(t, snap.Panel.Options(), "Pausado")

	_, err = snap.Panel.Submit(ctx, "Pausado", "esperando repuesto")
	require.NoError(t, err)

	assert.Equal(t, 2, tr.fichaCalls, "a status change reloads the record")
	assert.Equal(t, "Pausado", tr.filters[1].Status, "the reload keeps the filter")
	current := v.Snapshot()
	require.NotNil(t, current.Panel)
	assert.Equal(t, "Pausado", current.Panel.Status())
	assert.NotContains(t, current.Panel.Options(), "Finalizado")
}

var _ workorder.Transport = (*fakeTransport)(nil)
