package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPauseAlreadyActive = errors.New("work order already has an active pause")
	ErrNoActivePause      = errors.New("work order has no active pause")
	ErrInvalidPauseReason = errors.New("invalid pause reason")
	ErrWorkOrderClosed    = errors.New("work order is closed")
)

// IPauseUseCase logs work stoppages on an order.
//
//   - POST ordenes/:id/pausas/start => Start()
//   - POST ordenes/:id/pausas/stop => Stop()
//   - GET ordenes/:id/pausas => List()
type IPauseUseCase interface {
	Start(ctx context.Context, orderID int64, reason, note string, actor entities.Employee) (entities.Pause, error)
	Stop(ctx context.Context, orderID int64, actor entities.Employee) (entities.Pause, error)
	List(ctx context.Context, orderID int64) ([]entities.Pause, error)
}

type PauseUseCase struct {
	pauses interfaces.IPauseRepository
	orders interfaces.IWorkOrderRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ IPauseUseCase = (*PauseUseCase)(nil)

func NewPauseUseCase(pauses interfaces.IPauseRepository, orders interfaces.IWorkOrderRepository, logger *zap.Logger) *PauseUseCase {
	return &PauseUseCase{pauses: pauses, orders: orders, logger: orNop(logger), now: time.Now}
}

func (u *PauseUseCase) Start(ctx context.Context, orderID int64, reason, note string, actor entities.Employee) (entities.Pause, error) {
	if !actor.Role.CanOperateOrders() {
		return entities.Pause{}, ErrForbidden
	}
	order, err := u.order(ctx, orderID)
	if err != nil {
		return entities.Pause{}, err
	}
	if order.Status.IsFinal() {
		return entities.Pause{}, ErrWorkOrderClosed
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = entities.DefaultPauseReason
	}
	if utf8.RuneCountInString(reason) > entities.PauseReasonMaxLen {
		return entities.Pause{}, ErrInvalidPauseReason
	}

	p := entities.Pause{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		Reason:    reason,
		Note:      strings.TrimSpace(note),
		StartedBy: actor.RUT,
		StartedAt: u.now().UTC(),
		Active:    true,
	}
	created, err := u.pauses.Start(ctx, p)
	if errors.Is(err, interfaces.ErrPauseActive) {
		return entities.Pause{}, ErrPauseAlreadyActive
	}
	if err != nil {
		return entities.Pause{}, err
	}

	u.logger.Info("[pause][usecase] pause started",
		zap.Int64("order_id", order.ID),
		zap.String("pause_id", created.ID),
		zap.String("reason", reason),
		zap.String("actor", actor.RUT))
	return created, nil
}

func (u *PauseUseCase) Stop(ctx context.Context, orderID int64, actor entities.Employee) (entities.Pause, error) {
	if !actor.Role.CanOperateOrders() {
		return entities.Pause{}, ErrForbidden
	}
	order, err := u.order(ctx, orderID)
	if err != nil {
		return entities.Pause{}, err
	}

	active, err := u.pauses.Active(ctx, order.ID)
	if err != nil {
		return entities.Pause{}, err
	}
	if active.ID == "" {
		return entities.Pause{}, ErrNoActivePause
	}

	end := u.now().UTC()
	active.EndedAt = &end
	active.Active = false
	active.StoppedBy = actor.RUT

	stopped, err := u.pauses.Stop(ctx, active)
	if err != nil {
		return entities.Pause{}, err
	}
	if stopped.ID == "" {
		return entities.Pause{}, ErrNoActivePause
	}

	u.logger.Info("[pause][usecase] pause stopped",
		zap.Int64("order_id", order.ID),
		zap.String("pause_id", stopped.ID),
		zap.Duration("elapsed", stopped.Elapsed(end)),
		zap.String("actor", actor.RUT))
	return stopped, nil
}

func (u *PauseUseCase) List(ctx context.Context, orderID int64) ([]entities.Pause, error) {
	order, err := u.order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return u.pauses.ListByOrder(ctx, order.ID)
}

func (u *PauseUseCase) order(ctx context.Context, id int64) (entities.WorkOrder, error) {
	if id <= 0 {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if o.ID == 0 {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return o, nil
}
