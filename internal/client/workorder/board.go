package workorder

import (
	"context"
	"sync"
	"time"

	"taller_flota/internal/client/api"
	"taller_flota/internal/client/poll"

	"go.uber.org/zap"
)

// Board is a polled order list (supervisor pending list or mechanic work
// list). Mount starts polling, Unmount stops it.
type Board struct {
	fetch func(ctx context.Context) ([]api.Order, error)
	task  *poll.Task

	mu        sync.Mutex
	orders    []api.Order
	updatedAt time.Time
	onChange  func([]api.Order)
}

func NewBoard(fetch func(ctx context.Context) ([]api.Order, error), interval time.Duration, logger *zap.Logger) *Board {
	b := &Board{fetch: fetch}
	b.task = poll.NewTask(interval, b.Refresh, logger)
	return b
}

// OnChange registers a callback run after every successful refresh.
func (b *Board) OnChange(fn func([]api.Order)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *Board) Refresh(ctx context.Context) error {
	orders, err := b.fetch(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.orders = orders
	b.updatedAt = time.Now()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(orders)
	}
	return nil
}

func (b *Board) Orders() []api.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.Order(nil), b.orders...)
}

func (b *Board) UpdatedAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updatedAt
}

func (b *Board) Mount(ctx context.Context) { b.task.Start(ctx) }

func (b *Board) Unmount() { b.task.Stop() }
