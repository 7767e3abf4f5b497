package memory

import (
	"context"
	"sort"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type WorkshopRepository struct {
	mu        sync.RWMutex
	workshops map[int64]entities.Workshop
}

var _ interfaces.IWorkshopRepository = (*WorkshopRepository)(nil)

func NewWorkshopRepository(seed ...entities.Workshop) *WorkshopRepository {
	r := &WorkshopRepository{workshops: make(map[int64]entities.Workshop)}
	for _, w := range seed {
		r.workshops[w.ID] = w
	}
	return r
}

func (r *WorkshopRepository) Create(ctx context.Context, w entities.Workshop) (entities.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.workshops[w.ID]; exists {
		return entities.Workshop{}, ErrAlreadyExists
	}
	r.workshops[w.ID] = w
	return w, nil
}

func (r *WorkshopRepository) GetByID(ctx context.Context, id int64) (entities.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.workshops[id], nil
}

func (r *WorkshopRepository) List(ctx context.Context) ([]entities.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Workshop, 0, len(r.workshops))
	for _, w := range r.workshops {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
