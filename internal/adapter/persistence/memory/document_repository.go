package memory

import (
	"context"
	"sort"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type DocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]entities.Document
}

var _ interfaces.IDocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{docs: make(map[string]entities.Document)}
}

func (r *DocumentRepository) Create(ctx context.Context, d entities.Document) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[d.ID]; exists {
		return entities.Document{}, ErrAlreadyExists
	}
	r.docs[d.ID] = d
	return d, nil
}

func (r *DocumentRepository) ListByOrderID(ctx context.Context, orderID int64) ([]entities.Document, error) {
	return r.filter(func(d entities.Document) bool { return d.OrderID != nil && *d.OrderID == orderID }), nil
}

func (r *DocumentRepository) ListByPlate(ctx context.Context, plate string) ([]entities.Document, error) {
	return r.filter(func(d entities.Document) bool { return d.Plate == plate }), nil
}

func (r *DocumentRepository) filter(keep func(entities.Document) bool) []entities.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Document, 0)
	for _, d := range r.docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
