package interfaces

import (
	"context"
	"taller_flota/internal/domain/entities"
)

type IWorkshopRepository interface {
	Create(ctx context.Context, w entities.Workshop) (entities.Workshop, error)
	GetByID(ctx context.Context, id int64) (entities.Workshop, error)
	List(ctx context.Context) ([]entities.Workshop, error)
}
