package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]entities.Employee
}

var _ interfaces.IEmployeeRepository = (*EmployeeRepository)(nil)

func NewEmployeeRepository(seed ...entities.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]entities.Employee)}
	for _, e := range seed {
		r.employees[e.RUT] = e
	}
	return r
}

func (r *EmployeeRepository) Create(ctx context.Context, e entities.Employee) (entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.employees[e.RUT]; exists {
		return entities.Employee{}, ErrAlreadyExists
	}
	for _, other := range r.employees {
		if e.Username != "" && strings.EqualFold(other.Username, e.Username) {
			return entities.Employee{}, ErrAlreadyExists
		}
	}
	r.employees[e.RUT] = e
	return e, nil
}

func (r *EmployeeRepository) GetByRUT(ctx context.Context, rut string) (entities.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.employees[rut], nil
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (entities.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.employees {
		if strings.EqualFold(e.Username, username) {
			return e, nil
		}
	}
	return entities.Employee{}, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]entities.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RUT < out[j].RUT })
	return out, nil
}
