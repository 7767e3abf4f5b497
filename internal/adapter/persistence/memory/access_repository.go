package memory

import (
	"context"
	"sort"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type AccessRepository struct {
	mu      sync.RWMutex
	records map[string]entities.AccessRecord
}

var _ interfaces.IAccessRepository = (*AccessRepository)(nil)

func NewAccessRepository() *AccessRepository {
	return &AccessRepository{records: make(map[string]entities.AccessRecord)}
}

func (r *AccessRepository) Open(ctx context.Context, a entities.AccessRecord) (entities.AccessRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[a.ID]; exists {
		return entities.AccessRecord{}, ErrAlreadyExists
	}
	for _, cur := range r.records {
		if cur.Plate == a.Plate && cur.IsOpen() {
			return entities.AccessRecord{}, interfaces.ErrAccessOpen
		}
	}
	r.records[a.ID] = a
	return a, nil
}

func (r *AccessRepository) OpenByPlate(ctx context.Context, plate string) (entities.AccessRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.records {
		if a.Plate == plate && a.IsOpen() {
			return a, nil
		}
	}
	return entities.AccessRecord{}, nil
}

func (r *AccessRepository) Close(ctx context.Context, a entities.AccessRecord) (entities.AccessRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.records[a.ID]
	if !ok || !cur.IsOpen() {
		return entities.AccessRecord{}, nil
	}
	r.records[a.ID] = a
	return a, nil
}

func (r *AccessRepository) ListByPlate(ctx context.Context, plate string) ([]entities.AccessRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.AccessRecord, 0)
	for _, a := range r.records {
		if a.Plate == plate {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
