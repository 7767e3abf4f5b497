package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"taller_flota/internal/adapter/persistence/memory"
	"taller_flota/internal/domain/entities"
)

func newPauseFixture(t *testing.T, orders ...entities.WorkOrder) (*PauseUseCase, *memory.PauseRepository) {
	t.Helper()
	repo := memory.NewWorkOrderRepository(1)
	for _, o := range orders {
		if _, err := repo.Create(context.Background(), o); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	pauses := memory.NewPauseRepository()
	uc := NewPauseUseCase(pauses, repo, nil)
	uc.now = fixedNow
	return uc, pauses
}

func TestPauseUseCase_Start(t *testing.T) {
	ctx := context.Background()
	inProcess := entities.WorkOrder{ID: 1, Plate: "AB1234", Status: entities.StatusEnProceso}
	closed := entities.WorkOrder{ID: 2, Plate: "CD5678", Status: entities.StatusFinalizado}

	t.Run("validation errors", func(t *testing.T) {
		uc, _ := newPauseFixture(t, inProcess, closed)
		cases := []struct {
			name   string
			id     int64
			reason string
			actor  entities.Employee
			want   error
		}{
			{"driver cannot pause", 1, "", driver, ErrForbidden},
			{"bad id", 0, "", mechanic, ErrInvalidWorkOrderID},
			{"missing order", 99, "", mechanic, ErrWorkOrderNotFound},
			{"closed order", 2, "", mechanic, ErrWorkOrderClosed},
			{"reason too long", 1, strings.Repeat("á", entities.PauseReasonMaxLen+1), mechanic, ErrInvalidPauseReason},
		}
		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := uc.Start(ctx, tt.id, tt.reason, "", tt.actor); !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("default reason and one active pause", func(t *testing.T) {
		uc, _ := newPauseFixture(t, inProcess)
		p, err := uc.Start(ctx, 1, "  ", " turno ", mechanic)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Reason != entities.DefaultPauseReason || p.Note != "turno" || !p.Active || p.StartedBy != mechanic.RUT || !p.StartedAt.Equal(fixedNow()) {
			t.Fatalf("unexpected pause: %+v", p)
		}
		if _, err := uc.Start(ctx, 1, "otra", "", supervisor); !errors.Is(err, ErrPauseAlreadyActive) {
			t.Fatalf("expected ErrPauseAlreadyActive, got %v", err)
		}
	})

	t.Run("concurrent starts leave one active pause", func(t *testing.T) {
		uc, pauses := newPauseFixture(t, inProcess)
		const n = 20
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.Start(ctx, 1, "", "", mechanic)
			}(i)
		}
		wg.Wait()
		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
			} else if !errors.Is(err, ErrPauseAlreadyActive) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		list, _ := pauses.ListByOrder(ctx, 1)
		if ok != 1 || len(list) != 1 {
			t.Fatalf("expected one pause, got %d ok and %d stored", ok, len(list))
		}
	})
}

func TestPauseUseCase_StopAndList(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPauseFixture(t, entities.WorkOrder{ID: 1, Plate: "AB1234", Status: entities.StatusPausado})

	if _, err := uc.Stop(ctx, 1, mechanic); !errors.Is(err, ErrNoActivePause) {
		t.Fatalf("expected ErrNoActivePause, got %v", err)
	}

	if _, err := uc.Start(ctx, 1, "esperando repuesto", "", mechanic); err != nil {
		t.Fatalf("start: %v", err)
	}
	uc.now = func() time.Time { return fixedNow().Add(90 * time.Minute) }
	stopped, err := uc.Stop(ctx, 1, supervisor)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.Active || stopped.EndedAt == nil || stopped.StoppedBy != supervisor.RUT {
		t.Fatalf("unexpected stopped pause: %+v", stopped)
	}
	if got := stopped.Elapsed(time.Time{}); got != 90*time.Minute {
		t.Fatalf("expected 90m elapsed, got %s", got)
	}

	if _, err := uc.Start(ctx, 1, "almuerzo", "", mechanic); err != nil {
		t.Fatalf("a stopped pause frees the order: %v", err)
	}
	list, err := uc.List(ctx, 1)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 pauses, got %d, %v", len(list), err)
	}
	if list[0].Reason != "almuerzo" || !list[0].Active {
		t.Fatalf("expected newest first, got %+v", list[0])
	}

	if _, err := uc.List(ctx, 99); !errors.Is(err, ErrWorkOrderNotFound) {
		t.Fatalf("expected ErrWorkOrderNotFound, got %v", err)
	}
}
