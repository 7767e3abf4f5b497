package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

func TestAccessDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewAccessDynamoRepository(ddb, "access_control", "reservations")

	at := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	entry := entities.AccessRecord{ID: "a1", Plate: "AB1234", DriverRUT: "3-3", EntryGuardRUT: "5-5", EntryDate: "2024-05-03", CreatedAt: at}
	if _, err := repo.Open(ctx, entry); err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	dup := entry
	dup.ID = "a2"
	if _, err := repo.Open(ctx, dup); !errors.Is(err, interfaces.ErrAccessOpen) {
		t.Fatalf("expected ErrAccessOpen, got %v", err)
	}

	open, err := repo.OpenByPlate(ctx, "AB1234")
	if err != nil || open.ID != "a1" || !open.IsOpen() {
		t.Fatalf("unexpected open record: %+v, %v", open, err)
	}

	closed := open
	closed.ExitDate = "2024-05-04"
	closed.ExitGuardRUT = "5-5"
	closed.Forced = true
	closed.ForcedReason = "traslado"
	if got, err := repo.Close(ctx, closed); err != nil || got.ID != "a1" {
		t.Fatalf("unexpected close: %+v, %v", got, err)
	}
	if got, err := repo.Close(ctx, closed); err != nil || got.ID != "" {
		t.Fatalf("closing twice returns a zero record, got %+v, %v", got, err)
	}
	if n := ddb.count("reservations"); n != 0 {
		t.Fatalf("expected gate claim released, got %d", n)
	}
	if now, _ := repo.OpenByPlate(ctx, "AB1234"); now.ID != "" {
		t.Fatalf("expected vehicle outside, got %+v", now)
	}

	again := entry
	again.ID = "a3"
	again.CreatedAt = at.Add(48 * time.Hour)
	if _, err := repo.Open(ctx, again); err != nil {
		t.Fatalf("expected re-entry after exit: %v", err)
	}
	history, err := repo.ListByPlate(ctx, "AB1234")
	if err != nil || len(history) != 2 || history[0].ID != "a3" || history[1].ForcedReason != "traslado" {
		t.Fatalf("unexpected history: %+v, %v", history, err)
	}
}
