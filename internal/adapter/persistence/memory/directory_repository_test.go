package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"taller_flota/internal/domain/entities"
)

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(entities.Employee{RUT: "11111111-1", Username: "nicolas", Role: entities.RoleSupervisor})

	t.Run("username lookup ignores case", func(t *testing.T) {
		e, err := repo.GetByUsername(ctx, "NICOLAS")
		if err != nil || e.RUT != "11111111-1" {
			t.Fatalf("unexpected result: %+v, %v", e, err)
		}
	})

	t.Run("unknown username returns zero employee", func(t *testing.T) {
		e, _ := repo.GetByUsername(ctx, "nadie")
		if e.RUT != "" {
			t.Fatalf("expected zero employee, got %+v", e)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, entities.Employee{RUT: "22222222-2", Username: "Nicolas"})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list sorted by rut", func(t *testing.T) {
		_, _ = repo.Create(ctx, entities.Employee{RUT: "05555555-5", Username: "ana"})
		list, _ := repo.List(ctx)
		if len(list) != 2 || list[0].RUT != "05555555-5" {
			t.Fatalf("unexpected list: %+v", list)
		}
	})
}

func TestVehicleRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository(entities.Vehicle{Plate: "AB1234", Status: entities.VehicleDisponible})

	if err := repo.UpdateStatus(ctx, "AB1234", entities.VehicleEnTaller); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := repo.Get(ctx, "AB1234")
	if v.Status != entities.VehicleEnTaller {
		t.Fatalf("expected %s, got %s", entities.VehicleEnTaller, v.Status)
	}

	if err := repo.UpdateStatus(ctx, "ZZ9999", entities.VehicleEnTaller); err != nil {
		t.Fatalf("unknown plate should be ignored, got %v", err)
	}
	if missing, _ := repo.Get(ctx, "ZZ9999"); missing.Plate != "" {
		t.Fatalf("unknown plate was created: %+v", missing)
	}

	if _, err := repo.Create(ctx, entities.Vehicle{Plate: "AB1234"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestWorkshopRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkshopRepository(entities.Workshop{ID: 3, Name: "Santiago"}, entities.Workshop{ID: 1, Name: "Talca"})

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if w, _ := repo.GetByID(ctx, 9); w.ID != 0 {
		t.Fatalf("expected zero workshop, got %+v", w)
	}
}

func TestDocumentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository()
	orderID := int64(101)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	_, _ = repo.Create(ctx, entities.Document{ID: "a", Plate: "AB1234", CreatedAt: base})
	_, _ = repo.Create(ctx, entities.Document{ID: "b", Plate: "AB1234", OrderID: &orderID, CreatedAt: base.Add(time.Hour)})
	_, _ = repo.Create(ctx, entities.Document{ID: "c", Plate: "CD5678", CreatedAt: base})

	byPlate, _ := repo.ListByPlate(ctx, "AB1234")
	if len(byPlate) != 2 || byPlate[0].ID != "b" {
		t.Fatalf("expected newest first [b a], got %+v", byPlate)
	}

	byOrder, _ := repo.ListByOrderID(ctx, orderID)
	if len(byOrder) != 1 || byOrder[0].ID != "b" {
		t.Fatalf("unexpected order documents: %+v", byOrder)
	}

	if _, err := repo.Create(ctx, entities.Document{ID: "a"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
