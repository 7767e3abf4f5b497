package interfaces

import (
	"context"
	"errors"

	"taller_flota/internal/domain/entities"
)

var ErrPauseActive = errors.New("work order already has an active pause")

// IPauseRepository stores work stoppages per order.
//
// Start fails with ErrPauseActive when the order already has an active pause;
// the check is atomic with the insert. Active returns a zero Pause when there
// is none. Stop writes only while the stored pause is still active and
// returns a zero Pause otherwise. ListByOrder is newest first.
type IPauseRepository interface {
	Start(ctx context.Context, p entities.Pause) (entities.Pause, error)
	Active(ctx context.Context, orderID int64) (entities.Pause, error)
	Stop(ctx context.Context, p entities.Pause) (entities.Pause, error)
	ListByOrder(ctx context.Context, orderID int64) ([]entities.Pause, error)
}
