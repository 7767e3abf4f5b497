package interfaces

import (
	"context"
	"errors"

	"taller_flota/internal/domain/entities"
)

var ErrAccessOpen = errors.New("vehicle already has an open access record")

// IAccessRepository stores site entries and exits.
//
// Open fails with ErrAccessOpen when the plate already has an open record;
// the check is atomic with the insert. OpenByPlate returns a zero record when
// the vehicle is outside. Close writes only while the stored record is still
// open and returns a zero record otherwise. ListByPlate is newest first.
type IAccessRepository interface {
	Open(ctx context.Context, a entities.AccessRecord) (entities.AccessRecord, error)
	OpenByPlate(ctx context.Context, plate string) (entities.AccessRecord, error)
	Close(ctx context.Context, a entities.AccessRecord) (entities.AccessRecord, error)
	ListByPlate(ctx context.Context, plate string) ([]entities.AccessRecord, error)
}
