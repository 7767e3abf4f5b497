package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"taller_flota/internal/client/agenda"
	"taller_flota/internal/client/api"
	"taller_flota/internal/client/intake"
	"taller_flota/internal/client/workorder"
	"taller_flota/internal/config"
	"taller_flota/internal/infrastructure/auth"
	"taller_flota/internal/infrastructure/cache"
	"taller_flota/internal/infrastructure/report"
	"taller_flota/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type countingTransport struct {
	n    atomic.Int64
	next http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.n.Add(1)
	return t.next.RoundTrip(req)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads := t.TempDir()
	files, err := storage.NewLocalFileStorage(uploads)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	d := &Dependencies{
		Logger:      zap.NewNop(),
		FileStorage: files,
		Tokens:      auth.NewJWTService("test-secret", time.Hour),
		Revocations: cache.NewMemoryRevocationStore(),
		Hasher:      auth.NewBcryptHasher(4),
		Exporter:    report.NewXLSXExporter(),
		UploadsDir:  uploads,
	}
	NewMemoryStores(d, 101)
	err = Bootstrap(context.Background(), config.Bootstrap{
		AdminRUT:      "12345678-5",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		Workshops:     "3:Taller Sur",
	}, d)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	srv := httptest.NewServer(NewRouter(d))
	t.Cleanup(srv.Close)
	return srv
}

func TestWorkshopFlow(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	counter := &countingTransport{next: http.DefaultTransport}
	client := api.New(srv.URL+PathAPI, api.WithHTTPClient(&http.Client{Transport: counter}))

	if _, err := client.Slots(ctx, "2024-05-01", 3); err == nil {
		t.Fatalf("expected anonymous request to be rejected")
	} else if be, ok := api.AsBusinessError(err); !ok || be.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 business error, got %v", err)
	}

	login, err := client.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" || login.Employee.Role != "ADMIN" {
		t.Fatalf("unexpected login: %+v", login)
	}

	picker := agenda.NewSlotPicker(client, nil)
	flow := intake.NewFlow(client, picker, nil)

	res, err := flow.Submit(ctx, intake.Input{Plate: "ab-1234", Date: "2024-05-01", Time: "09:00", LocationID: 3})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	if res.Stage != intake.StageVehicle {
		t.Fatalf("expected vehicle sub-form for an unknown plate, got stage %d", res.Stage)
	}

	res, err = flow.ProvideVehicle(ctx, intake.VehicleInput{Brand: "Ford", Model: "Ranger", Year: 2020})
	if err != nil {
		t.Fatalf("intake with vehicle: %v", err)
	}
	if res.Stage != intake.StageDone || res.Order == nil || res.Order.ID != 101 || res.Order.Status != "Pendiente" {
		t.Fatalf("unexpected intake result: %+v", res)
	}

	controls := picker.Controls()
	if len(controls) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(controls))
	}
	for _, c := range controls {
		occupied := c.Time == "09:00"
		if c.Occupied != occupied || c.Enabled == occupied {
			t.Fatalf("unexpected control %+v", c)
		}
	}
	if err := picker.Select("09:00"); !errors.Is(err, agenda.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}

	if _, err := flow.Submit(ctx, intake.Input{Plate: "AB1234", Date: "2024-05-02", LocationID: 3}); err == nil {
		t.Fatalf("expected active order rejection")
	} else if be, ok := api.AsBusinessError(err); !ok || be.Message != "Ya existe una OT activa #101 para este vehículo." {
		t.Fatalf("unexpected rejection: %v", err)
	}

	panel := workorder.FromOrder(client, *res.Order)

	before := counter.n.Load()
	if _, err := panel.Submit(ctx, "Finalizado", "  "); !errors.Is(err, workorder.ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got %v", err)
	}
	if counter.n.Load() != before {
		t.Fatalf("a blank comment must not reach the server")
	}

	steps := []struct{ to, comment string }{
		{"En Taller", "ingresa a taller"},
		{"En Proceso", "diagnóstico"},
		{"Pausado", "esperando repuesto"},
	}
	for _, s := range steps {
		order, err := panel.Submit(ctx, s.to, s.comment)
		if err != nil {
			t.Fatalf("move to %s: %v", s.to, err)
		}
		if order == nil || order.Status != s.to || panel.Status() != s.to {
			t.Fatalf("expected status %s, got %+v (panel %s)", s.to, order, panel.Status())
		}
	}

	for _, o := range panel.Options() {
		if o == "Finalizado" {
			t.Fatalf("Pausado must not offer Finalizado: %v", panel.Options())
		}
	}
	before = counter.n.Load()
	if _, err := panel.Submit(ctx, "Finalizado", "listo"); !errors.Is(err, workorder.ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
	}
	if counter.n.Load() != before {
		t.Fatalf("a disallowed transition must not reach the server")
	}

	pause, err := client.StartPause(ctx, 101, "esperando repuesto", "")
	if err != nil || !pause.Active {
		t.Fatalf("start pause: %+v, %v", pause, err)
	}
	if _, err := client.StartPause(ctx, 101, "", ""); err == nil {
		t.Fatalf("expected second pause to be rejected")
	} else if be, ok := api.AsBusinessError(err); !ok || be.Code != "PAUSE_ACTIVE" {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if stopped, err := client.StopPause(ctx, 101); err != nil || stopped.Active || stopped.EndedAt == nil {
		t.Fatalf("stop pause: %+v, %v", stopped, err)
	}
	if pauses, err := client.Pauses(ctx, 101); err != nil || len(pauses) != 1 {
		t.Fatalf("expected one pause, got %+v, %v", pauses, err)
	}

	if _, err := client.GateEntry(ctx, api.GateRequest{Plate: "AB1234", DriverRUT: "12345678-5"}); err != nil {
		t.Fatalf("gate entry: %v", err)
	}
	gate, err := client.GateLookup(ctx, "AB1234")
	if err != nil || !gate.Inside || gate.ExitReleased || gate.Vehicle.Status != "En Recinto" {
		t.Fatalf("unexpected gate status: %+v, %v", gate, err)
	}
	if _, err := client.GateExit(ctx, api.GateRequest{Plate: "AB1234"}); err == nil {
		t.Fatalf("a paused order must block the exit")
	} else if be, ok := api.AsBusinessError(err); !ok || be.Code != "EXIT_NOT_RELEASED" {
		t.Fatalf("unexpected rejection: %v", err)
	}
	exit, err := client.GateExit(ctx, api.GateRequest{Plate: "AB1234", Force: true, Reason: "traslado a otro taller"})
	if err != nil || !exit.Forced || exit.ExitDate == "" {
		t.Fatalf("forced exit: %+v, %v", exit, err)
	}

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	client.SetToken(login.Token)
	if err := client.Ping(ctx); err != nil {
		t.Fatalf("ping is public: %v", err)
	}
	if _, err := client.PendingOrders(ctx); err == nil {
		t.Fatalf("revoked token must be rejected")
	}
}

func TestParseWorkshops(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := ParseWorkshops(" 1:Taller Central , 2: Taller Norte,,")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[0].Name != "Taller Central" || got[1].Name != "Taller Norte" {
			t.Fatalf("unexpected workshops: %+v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ParseWorkshops("")
		if err != nil || len(got) != 0 {
			t.Fatalf("expected no workshops, got %+v, %v", got, err)
		}
	})

	for _, raw := range []string{"Taller", "x:Taller", "0:Taller", "1:"} {
		t.Run("invalid "+raw, func(t *testing.T) {
			if _, err := ParseWorkshops(raw); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}
}

func TestBootstrap_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := &Dependencies{Logger: zap.NewNop(), Hasher: auth.NewBcryptHasher(4)}
	NewMemoryStores(d, 1)
	cfg := config.Bootstrap{AdminRUT: "12345678-5", AdminUsername: "admin", AdminPassword: "admin123", Workshops: "1:Taller Central"}

	for i := 0; i < 2; i++ {
		if err := Bootstrap(ctx, cfg, d); err != nil {
			t.Fatalf("bootstrap run %d: %v", i, err)
		}
	}
	admin, err := d.Employees.GetByUsername(ctx, "admin")
	if err != nil || admin.RUT != "12345678-5" || admin.WorkshopID != 1 {
		t.Fatalf("unexpected admin: %+v, %v", admin, err)
	}
	list, err := d.Workshops.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one workshop, got %+v, %v", list, err)
	}
}
