package reports

import (
	"context"
	"errors"
	"testing"

	"taller_flota/internal/client/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	globalErr error
}

func (f *fakeTransport) ReportSummary(_ context.Context, from, to string) (api.Summary, error) {
	return api.Summary{From: from, To: to, VehiclesTotal: 4}, nil
}

func (f *fakeTransport) ReportGlobal(_ context.Context, from, to string) (api.Global, error) {
	if f.globalErr != nil {
		return api.Global{}, f.globalErr
	}
	return api.Global{From: from, To: to, Total: 3, ByStatus: map[string]int{"Pendiente": 2, "Finalizado": 1, "Archivado": 4}}, nil
}

func (f *fakeTransport) ReportWorkshops(context.Context, string, string) ([]api.WorkshopStats, error) {
	return []api.WorkshopStats{{WorkshopID: 1, Name: "Santiago", Pending: 2}, {WorkshopID: 2, Name: "Talca"}}, nil
}

func (f *fakeTransport) ReportAverageTimes(context.Context, string, string) (api.AverageTimes, error) {
	return api.AverageTimes{GlobalDays: 2.5, ByWorkshop: []api.WorkshopAverage{{Name: "Santiago", Days: 4}}}, nil
}

func TestDashboard_Load(t *testing.T) {
	snap, err := NewDashboard(&fakeTransport{}).Load(context.Background(), "2024-04-01", "2024-04-30")
	require.NoError(t, err)

	assert.Equal(t, 4, snap.Summary.VehiclesTotal)
	assert.Equal(t, "2024-04-01", snap.Global.From)

	labels := snap.ByStatus.Labels
	require.Len(t, labels, 10)
	assert.Equal(t, "Pendiente", labels[0])
	assert.Equal(t, "Cancelado", labels[8])
	assert.Equal(t, "Archivado", labels[9], "unknown statuses go last")
	assert.Equal(t, 2.0, snap.ByStatus.Values[0])
	assert.Equal(t, 4.0, snap.ByStatus.Values[9])

	assert.Equal(t, Dataset{Labels: []string{"Santiago", "Talca"}, Values: []float64{2, 0}}, snap.PendingByShop)
	assert.Equal(t, Dataset{Labels: []string{"Santiago"}, Values: []float64{4}}, snap.DaysByShop)
}

func TestDashboard_LoadFailure(t *testing.T) {
	_, err := NewDashboard(&fakeTransport{globalErr: errors.New("boom")}).Load(context.Background(), "", "")
	assert.ErrorContains(t, err, "resumen")
}
