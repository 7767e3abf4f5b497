package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"taller_flota/internal/adapter/http/handlers/mocks"
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestIntakeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIIntakeUseCase) *gin.Engine {
		r := gin.New()
		r.POST("/ingresos/create", withSession(supervisorClaims), NewIntakeHandler(uc).Create)
		return r
	}
	valid := url.Values{"plate": {"AB1234"}, "date": {"2024-05-01"}, "time": {"09:00"}, "location_id": {"3"}}

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIIntakeUseCase(ctrl)

		w := postForm(newRouter(uc), "/ingresos/create", url.Values{"plate": {"AB1234"}})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIIntakeUseCase(ctrl)
		uc.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.IntakeCommand) (usecase.IntakeResult, error) {
				if cmd.Plate != "AB1234" || cmd.LocationID != 3 || cmd.Time != "09:00" || cmd.Vehicle != nil || cmd.Driver != nil {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return usecase.IntakeResult{Outcome: usecase.IntakeOK, Order: entities.WorkOrder{ID: 101, Status: entities.StatusPendiente}}, nil
			},
		)

		w := postForm(newRouter(uc), "/ingresos/create", valid)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["status"] != "ok" || body["success"] != true || body["message"] != "Ingreso registrado. OT #101 creada." {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("follow-up tags answer 200 without success", func(t *testing.T) {
		for _, outcome := range []usecase.IntakeOutcome{usecase.IntakeNewDriver, usecase.IntakeVehicleMissing} {
			t.Run(string(outcome), func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				uc := mocks.NewMockIIntakeUseCase(ctrl)
				uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(usecase.IntakeResult{Outcome: outcome}, nil)

				w := postForm(newRouter(uc), "/ingresos/create", valid)
				if w.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d", w.Code)
				}
				body := decodeBody(t, w)
				if body["status"] != string(outcome) || body["success"] != false {
					t.Fatalf("unexpected body: %v", body)
				}
				if _, ok := body["order"]; ok {
					t.Fatalf("follow-up must not carry an order")
				}
			})
		}
	})

	t.Run("vehicle sub-form is forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIIntakeUseCase(ctrl)
		uc.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.IntakeCommand) (usecase.IntakeResult, error) {
				if cmd.Vehicle == nil || cmd.Vehicle.Brand != "Ford" || cmd.Vehicle.Year != 2020 {
					t.Fatalf("unexpected vehicle: %+v", cmd.Vehicle)
				}
				return usecase.IntakeResult{Outcome: usecase.IntakeOK, Order: entities.WorkOrder{ID: 102}}, nil
			},
		)

		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Set("vehicle_brand", "Ford")
		form.Set("vehicle_model", "Ranger")
		form.Set("vehicle_year", "2020")
		w := postForm(newRouter(uc), "/ingresos/create", form)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("errors are mapped", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			code int
			msg  string
		}{
			{"active order", &usecase.ActiveOrderError{OrderID: 77}, http.StatusConflict, "Ya existe una OT activa #77 para este vehículo."},
			{"slot occupied", usecase.ErrSlotOccupied, http.StatusConflict, "El horario seleccionado ya está ocupado."},
			{"invalid plate", usecase.ErrInvalidPlate, http.StatusBadRequest, "Patente inválida."},
			{"workshop", usecase.ErrWorkshopNotFound, http.StatusNotFound, "Taller no encontrado."},
			{"internal", errors.New("db"), http.StatusInternalServerError, "An internal error occurred"},
		}
		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				uc := mocks.NewMockIIntakeUseCase(ctrl)
				uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(usecase.IntakeResult{}, tt.err)

				w := postForm(newRouter(uc), "/ingresos/create", valid)
				if w.Code != tt.code {
					t.Fatalf("expected %d, got %d", tt.code, w.Code)
				}
				if body := decodeBody(t, w); body["message"] != tt.msg {
					t.Fatalf("unexpected message: %v", body["message"])
				}
			})
		}
	})
}

func TestAgendaHandler_Slots(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgendaUseCase(ctrl)
		r := gin.New()
		r.GET("/agenda/slots", NewAgendaHandler(uc).Slots)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agenda/slots?date=2024-05-01", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("grid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgendaUseCase(ctrl)
		uc.EXPECT().Slots(gomock.Any(), "2024-05-01", int64(3)).Return(entities.DaySlots(map[string]bool{"09:00": true}), nil)
		r := gin.New()
		r.GET("/agenda/slots", NewAgendaHandler(uc).Slots)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agenda/slots?date=2024-05-01&location_id=3", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		slots := decodeBody(t, w)["slots"].([]any)
		first := slots[0].(map[string]any)
		if len(slots) != 10 || first["time"] != "09:00" || first["occupied"] != true {
			t.Fatalf("unexpected slots: %v", slots)
		}
	})

	t.Run("unknown workshop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgendaUseCase(ctrl)
		uc.EXPECT().Slots(gomock.Any(), "2024-05-01", int64(8)).Return(nil, usecase.ErrWorkshopNotFound)
		r := gin.New()
		r.GET("/agenda/slots", NewAgendaHandler(uc).Slots)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agenda/slots?date=2024-05-01&location_id=8", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
