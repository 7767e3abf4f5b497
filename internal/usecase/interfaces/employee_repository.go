package interfaces

import (
	"context"
	"taller_flota/internal/domain/entities"
)

type IEmployeeRepository interface {
	Create(ctx context.Context, e entities.Employee) (entities.Employee, error)
	GetByRUT(ctx context.Context, rut string) (entities.Employee, error)
	GetByUsername(ctx context.Context, username string) (entities.Employee, error)
	List(ctx context.Context) ([]entities.Employee, error)
}
