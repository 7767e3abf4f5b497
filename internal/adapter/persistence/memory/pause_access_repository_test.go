package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

func TestPauseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPauseRepository()
	at := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)

	if _, err := repo.Start(ctx, entities.Pause{ID: "p1", OrderID: 1, StartedAt: at, Active: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Start(ctx, entities.Pause{ID: "p2", OrderID: 1, StartedAt: at, Active: true}); !errors.Is(err, interfaces.ErrPauseActive) {
		t.Fatalf("expected ErrPauseActive, got %v", err)
	}
	if _, err := repo.Start(ctx, entities.Pause{ID: "p3", OrderID: 2, StartedAt: at, Active: true}); err != nil {
		t.Fatalf("another order pauses freely: %v", err)
	}

	stopped := entities.Pause{ID: "p1", OrderID: 1, StartedAt: at}
	if got, _ := repo.Stop(ctx, stopped); got.ID != "p1" {
		t.Fatalf("expected stop, got %+v", got)
	}
	if got, _ := repo.Stop(ctx, stopped); got.ID != "" {
		t.Fatalf("expected zero pause on second stop, got %+v", got)
	}
	if active, _ := repo.Active(ctx, 1); active.ID != "" {
		t.Fatalf("expected no active pause, got %+v", active)
	}
}

func TestAccessRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccessRepository()
	at := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)

	if _, err := repo.Open(ctx, entities.AccessRecord{ID: "a1", Plate: "AB1234", CreatedAt: at}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Open(ctx, entities.AccessRecord{ID: "a2", Plate: "AB1234", CreatedAt: at}); !errors.Is(err, interfaces.ErrAccessOpen) {
		t.Fatalf("expected ErrAccessOpen, got %v", err)
	}

	closed := entities.AccessRecord{ID: "a1", Plate: "AB1234", ExitDate: "2024-05-03", CreatedAt: at}
	if got, _ := repo.Close(ctx, closed); got.ID != "a1" {
		t.Fatalf("expected close, got %+v", got)
	}
	if got, _ := repo.Close(ctx, closed); got.ID != "" {
		t.Fatalf("expected zero record on second close, got %+v", got)
	}
	if _, err := repo.Open(ctx, entities.AccessRecord{ID: "a3", Plate: "AB1234", CreatedAt: at.Add(time.Hour)}); err != nil {
		t.Fatalf("expected re-entry: %v", err)
	}
	list, _ := repo.ListByPlate(ctx, "AB1234")
	if len(list) != 2 || list[0].ID != "a3" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}
