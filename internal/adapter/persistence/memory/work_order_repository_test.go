package memory

import (
	"context"
	"errors"
	"testing"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

func TestWorkOrderRepository_NextID(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at firstID", func(t *testing.T) {
		repo := NewWorkOrderRepository(101)
		first, _ := repo.NextID(ctx)
		second, _ := repo.NextID(ctx)
		if first != 101 || second != 102 {
			t.Fatalf("expected 101,102 got %d,%d", first, second)
		}
	})

	t.Run("non positive firstID falls back to 1", func(t *testing.T) {
		repo := NewWorkOrderRepository(0)
		id, _ := repo.NextID(ctx)
		if id != 1 {
			t.Fatalf("expected 1, got %d", id)
		}
	})
}

func TestWorkOrderRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkOrderRepository(1)

	o := entities.WorkOrder{ID: 7, Plate: "AB1234", Status: entities.StatusPendiente}
	if _, err := repo.Create(ctx, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, o); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.GetByID(ctx, 7)
	if err != nil || got.Plate != "AB1234" {
		t.Fatalf("unexpected get result: %+v, %v", got, err)
	}

	missing, err := repo.GetByID(ctx, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing.ID != 0 {
		t.Fatalf("expected zero order, got %+v", missing)
	}
}

func TestWorkOrderRepository_ListBySlot(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkOrderRepository(1)
	seed := []entities.WorkOrder{
		{ID: 3, LocationID: 3, Date: "2024-05-01", Time: "10:00"},
		{ID: 1, LocationID: 3, Date: "2024-05-01", Time: "09:00"},
		{ID: 2, LocationID: 4, Date: "2024-05-01", Time: "09:00"},
		{ID: 4, LocationID: 3, Date: "2024-05-02", Time: "09:00"},
	}
	for _, o := range seed {
		if _, err := repo.Create(ctx, o); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := repo.ListBySlot(ctx, 3, "2024-05-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected orders [1 3], got %+v", got)
	}
}

func TestWorkOrderRepository_ListFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkOrderRepository(1)
	_, _ = repo.Create(ctx, entities.WorkOrder{ID: 1, Plate: "AB1234", Date: "2024-05-01", Status: entities.StatusPendiente})
	_, _ = repo.Create(ctx, entities.WorkOrder{ID: 2, Plate: "AB1234", Date: "2024-05-10", Status: entities.StatusFinalizado})
	_, _ = repo.Create(ctx, entities.WorkOrder{ID: 3, Plate: "CD5678", Date: "2024-05-05", Status: entities.StatusPendiente})

	tests := []struct {
		name   string
		filter interfaces.WorkOrderFilter
		want   []int64
	}{
		{"plate", interfaces.WorkOrderFilter{Plate: "AB1234"}, []int64{1, 2}},
		{"range", interfaces.WorkOrderFilter{From: "2024-05-02", To: "2024-05-10"}, []int64{2, 3}},
		{"status", interfaces.WorkOrderFilter{Statuses: []entities.WorkOrderStatus{entities.StatusPendiente}}, []int64{1, 3}},
		{"none", interfaces.WorkOrderFilter{Plate: "ZZ9999"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d orders, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d: expected %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestWorkOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkOrderRepository(1)
	_, _ = repo.Create(ctx, entities.WorkOrder{ID: 1, Status: entities.StatusEnProceso})

	t.Run("stale expected status writes nothing", func(t *testing.T) {
		updated := entities.WorkOrder{ID: 1, Status: entities.StatusFinalizado}
		got, err := repo.UpdateStatus(ctx, updated, entities.StatusPendiente)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != 0 {
			t.Fatalf("expected zero order, got %+v", got)
		}
		stored, _ := repo.GetByID(ctx, 1)
		if stored.Status != entities.StatusEnProceso {
			t.Fatalf("status changed to %s", stored.Status)
		}
	})

	t.Run("matching expected status writes", func(t *testing.T) {
		updated := entities.WorkOrder{ID: 1, Status: entities.StatusPausado}
		got, err := repo.UpdateStatus(ctx, updated, entities.StatusEnProceso)
		if err != nil || got.Status != entities.StatusPausado {
			t.Fatalf("unexpected result: %+v, %v", got, err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		got, _ := repo.UpdateStatus(ctx, entities.WorkOrder{ID: 42}, entities.StatusPendiente)
		if got.ID != 0 {
			t.Fatalf("expected zero order, got %+v", got)
		}
	})
}

func TestWorkOrderRepository_HistoryIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkOrderRepository(1)
	o := entities.WorkOrder{ID: 1, History: []entities.StatusChange{{Comment: "original"}}}
	_, _ = repo.Create(ctx, o)

	o.History[0].Comment = "mutated"
	got, _ := repo.GetByID(ctx, 1)
	if got.History[0].Comment != "original" {
		t.Fatalf("store shares history with caller")
	}

	got.History[0].Comment = "mutated again"
	again, _ := repo.GetByID(ctx, 1)
	if again.History[0].Comment != "original" {
		t.Fatalf("store leaks history to readers")
	}
}

func TestWorkOrderRepository_CreateReservations(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkOrderRepository(1)

	first := entities.WorkOrder{ID: 1, Plate: "AB1234", LocationID: 3, Date: "2024-05-01", Time: "09:00", Status: entities.StatusPendiente}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		order entities.WorkOrder
		want  error
	}{
		{"same slot", entities.WorkOrder{ID: 2, Plate: "CD5678", LocationID: 3, Date: "2024-05-01", Time: "09:00", Status: entities.StatusPendiente}, interfaces.ErrSlotReserved},
		{"same plate", entities.WorkOrder{ID: 3, Plate: "AB1234", LocationID: 4, Date: "2024-05-02", Status: entities.StatusPendiente}, interfaces.ErrPlateReserved},
		{"other workshop same time", entities.WorkOrder{ID: 4, Plate: "EF9012", LocationID: 4, Date: "2024-05-01", Time: "09:00", Status: entities.StatusPendiente}, nil},
		{"closed orders hold nothing", entities.WorkOrder{ID: 5, Plate: "AB1234", LocationID: 3, Date: "2024-05-01", Time: "09:00", Status: entities.StatusFinalizado}, nil},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.order)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("closing the order frees slot and plate", func(t *testing.T) {
		cancelled := first
		cancelled.Status = entities.StatusCancelado
		if got, err := repo.UpdateStatus(ctx, cancelled, entities.StatusPendiente); err != nil || got.ID != 1 {
			t.Fatalf("unexpected update: %+v, %v", got, err)
		}
		again := entities.WorkOrder{ID: 6, Plate: "AB1234", LocationID: 3, Date: "2024-05-01", Time: "09:00", Status: entities.StatusPendiente}
		if _, err := repo.Create(ctx, again); err != nil {
			t.Fatalf("expected slot and plate to be free, got %v", err)
		}
	})
}
