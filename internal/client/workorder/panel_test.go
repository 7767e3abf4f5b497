package workorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taller_flota/internal/client/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	key, status, comment string
}

type fakeTransport struct {
	mu    sync.Mutex
	calls []call
	reply func(c call) (*api.Order, error)
}

func (f *fakeTransport) ChangeStatus(_ context.Context, orderKey, status, comment string) (*api.Order, error) {
	c := call{orderKey, status, comment}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	if f.reply == nil {
		return &api.Order{ID: 101, Status: status}, nil
	}
	return f.reply(c)
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeDialog struct {
	answer  DialogResult
	err     error
	prompts []Prompt
	notices []string
	levels  []Level
}

func (d *fakeDialog) Ask(_ context.Context, p Prompt) (DialogResult, error) {
	d.prompts = append(d.prompts, p)
	return d.answer, d.err
}

func (d *fakeDialog) Notify(_ context.Context, level Level, message string) {
	d.levels = append(d.levels, level)
	d.notices = append(d.notices, message)
}

func TestPanel_Options(t *testing.T) {
	cases := []struct {
		status string
		want   []string
	}{
		{"Pendiente", []string{"Recibida", "En Taller", "Cancelado"}},
		{"En Proceso", []string{"Pausado", "Finalizado", "No Reparable", "Sin Repuestos"}},
		{"Pausado", []string{"En Taller", "En Proceso", "No Reparable", "Sin Repuestos"}},
		{"Finalizado", []string{}},
		{"Volando", []string{}},
	}
	for _, tt := range cases {
		p := NewPanel(&fakeTransport{}, "101", tt.status)
		assert.Equal(t, tt.want, p.Options(), tt.status)
		assert.Equal(t, len(tt.want) > 0, p.Visible(), tt.status)
	}
}

func TestPanel_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("blank comment sends nothing", func(t *testing.T) {
		tr := &fakeTransport{}
		p := NewPanel(tr, "101", "En Proceso")
		_, err := p.Submit(ctx, "Finalizado", " \t ")
		assert.ErrorIs(t, err, ErrCommentRequired)
		assert.Zero(t, tr.count())
	})

	t.Run("target not offered sends nothing", func(t *testing.T) {
		tr := &fakeTransport{}
		p := NewPanel(tr, "101", "Pausado")
		_, err := p.Submit(ctx, "Finalizado", "listo")
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		assert.Zero(t, tr.count())
	})

	t.Run("status follows the echo and the refresher runs", func(t *testing.T) {
		tr := &fakeTransport{}
		refreshed := 0
		p := NewPanel(tr, "AB1234", "En Proceso", WithRefresher(RefresherFunc(func(context.Context) error {
			refreshed++
			return errors.New("ignored")
		})))

		order, err := p.Submit(ctx, " Pausado ", " esperando repuesto ")
		require.NoError(t, err)
		assert.Equal(t, "Pausado", order.Status)
		assert.Equal(t, "Pausado", p.Status())
		assert.Equal(t, 1, refreshed)
		assert.Equal(t, []call{{"AB1234", "Pausado", "esperando repuesto"}}, tr.calls)
		assert.NotContains(t, p.Options(), "Finalizado")
	})

	t.Run("without echo the old status stays", func(t *testing.T) {
		tr := &fakeTransport{reply: func(call) (*api.Order, error) { return nil, nil }}
		p := NewPanel(tr, "101", "En Proceso")
		_, err := p.Submit(ctx, "Pausado", "x")
		require.NoError(t, err)
		assert.Equal(t, "En Proceso", p.Status())
	})

	t.Run("server rejection keeps the status", func(t *testing.T) {
		tr := &fakeTransport{reply: func(call) (*api.Order, error) {
			return nil, &api.BusinessError{Status: 409, Message: "La OT fue modificada por otro usuario."}
		}}
		p := NewPanel(tr, "101", "En Proceso")
		_, err := p.Submit(ctx, "Pausado", "x")
		require.Error(t, err)
		assert.Equal(t, "En Proceso", p.Status())
		assert.Equal(t, "La OT fue modificada por otro usuario.", Message(err))
	})

	t.Run("concurrent submit is rejected", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		tr := &fakeTransport{reply: func(c call) (*api.Order, error) {
			close(started)
			<-release
			return &api.Order{Status: c.status}, nil
		}}
		p := NewPanel(tr, "101", "En Proceso")

		done := make(chan error, 1)
		go func() {
			_, err := p.Submit(ctx, "Pausado", "x")
			done <- err
		}()
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("first submit did not start")
		}
		_, err := p.Submit(ctx, "Finalizado", "y")
		assert.ErrorIs(t, err, ErrBusy)
		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, 1, tr.count())
	})
}

func TestPanel_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("no dialog", func(t *testing.T) {
		_, err := NewPanel(&fakeTransport{}, "101", "En Proceso").Request(ctx, "Pausado")
		assert.ErrorIs(t, err, ErrNoDialog)
	})

	t.Run("cancelled", func(t *testing.T) {
		tr := &fakeTransport{}
		d := &fakeDialog{answer: DialogResult{Confirmed: false, Text: "x"}}
		_, err := NewPanel(tr, "101", "En Proceso", WithDialog(d)).Request(ctx, "Pausado")
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Zero(t, tr.count())
		assert.Equal(t, "Cambiar estado a Pausado", d.prompts[0].Title)
	})

	t.Run("empty answer warns", func(t *testing.T) {
		tr := &fakeTransport{}
		d := &fakeDialog{answer: DialogResult{Confirmed: true, Text: ""}}
		_, err := NewPanel(tr, "101", "En Proceso", WithDialog(d)).Request(ctx, "Pausado")
		assert.ErrorIs(t, err, ErrCommentRequired)
		assert.Equal(t, []Level{LevelWarning}, d.levels)
		assert.Zero(t, tr.count())
	})

	t.Run("disallowed target never prompts", func(t *testing.T) {
		d := &fakeDialog{answer: DialogResult{Confirmed: true, Text: "x"}}
		_, err := NewPanel(&fakeTransport{}, "101", "Pausado", WithDialog(d)).Request(ctx, "Finalizado")
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		assert.Empty(t, d.prompts)
	})

	t.Run("success notifies", func(t *testing.T) {
		d := &fakeDialog{answer: DialogResult{Confirmed: true, Text: "esperando repuesto"}}
		p := NewPanel(&fakeTransport{}, "101", "En Proceso", WithDialog(d))
		_, err := p.Request(ctx, "Pausado")
		require.NoError(t, err)
		assert.Equal(t, []string{"Estado actualizado a Pausado."}, d.notices)
	})

	t.Run("success without echo keeps the notice neutral", func(t *testing.T) {
		d := &fakeDialog{answer: DialogResult{Confirmed: true, Text: "esperando repuesto"}}
		tr := &fakeTransport{reply: func(call) (*api.Order, error) { return nil, nil }}
		p := NewPanel(tr, "101", "En Proceso", WithDialog(d))
		_, err := p.Request(ctx, "Pausado")
		require.NoError(t, err)
		assert.Equal(t, []string{"Estado actualizado."}, d.notices)
	})

	t.Run("communication error message", func(t *testing.T) {
		d := &fakeDialog{answer: DialogResult{Confirmed: true, Text: "x"}}
		tr := &fakeTransport{reply: func(call) (*api.Order, error) { return nil, api.ErrCommunication }}
		_, err := NewPanel(tr, "101", "En Proceso", WithDialog(d)).Request(ctx, "Pausado")
		require.Error(t, err)
		assert.Equal(t, []Level{LevelError}, d.levels)
		assert.Equal(t, "Error de comunicación con el servidor.", d.notices[0])
	})
}

func TestFromOrder(t *testing.T) {
	p := FromOrder(&fakeTransport{}, api.Order{ID: 42, Status: "En Taller"})
	assert.Equal(t, "42", p.OrderKey())
	assert.Equal(t, "En Taller", p.Status())
	p.SetStatus(" Pausado ")
	assert.Equal(t, "Pausado", p.Status())
}

func TestBoard(t *testing.T) {
	ctx := context.Background()
	var calls int
	var mu sync.Mutex
	b := NewBoard(func(context.Context) ([]api.Order, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			return nil, errors.New("timeout")
		}
		return []api.Order{{ID: int64(calls)}}, nil
	}, time.Hour, nil)

	var seen [][]api.Order
	b.OnChange(func(o []api.Order) { seen = append(seen, o) })

	require.NoError(t, b.Refresh(ctx))
	assert.Error(t, b.Refresh(ctx))
	assert.Equal(t, []api.Order{{ID: 1}}, b.Orders())
	assert.Len(t, seen, 1)
	assert.False(t, b.UpdatedAt().IsZero())

	b.Mount(ctx)
	assert.Eventually(t, func() bool { return len(b.Orders()) == 1 && b.Orders()[0].ID == 3 }, time.Second, 5*time.Millisecond)
	b.Unmount()
}
