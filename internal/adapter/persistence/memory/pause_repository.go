package memory

import (
	"context"
	"sort"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type PauseRepository struct {
	mu     sync.RWMutex
	pauses map[string]entities.Pause
}

var _ interfaces.IPauseRepository = (*PauseRepository)(nil)

func NewPauseRepository() *PauseRepository {
	return &PauseRepository{pauses: make(map[string]entities.Pause)}
}

func (r *PauseRepository) Start(ctx context.Context, p entities.Pause) (entities.Pause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pauses[p.ID]; exists {
		return entities.Pause{}, ErrAlreadyExists
	}
	for _, cur := range r.pauses {
		if cur.OrderID == p.OrderID && cur.Active {
			return entities.Pause{}, interfaces.ErrPauseActive
		}
	}
	r.pauses[p.ID] = p
	return p, nil
}

func (r *PauseRepository) Active(ctx context.Context, orderID int64) (entities.Pause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.pauses {
		if p.OrderID == orderID && p.Active {
			return p, nil
		}
	}
	return entities.Pause{}, nil
}

func (r *PauseRepository) Stop(ctx context.Context, p entities.Pause) (entities.Pause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.pauses[p.ID]
	if !ok || !cur.Active {
		return entities.Pause{}, nil
	}
	r.pauses[p.ID] = p
	return p, nil
}

func (r *PauseRepository) ListByOrder(ctx context.Context, orderID int64) ([]entities.Pause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Pause, 0)
	for _, p := range r.pauses {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}
