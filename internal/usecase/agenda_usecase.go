package usecase

import (
	"context"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"
)

// IAgendaUseCase answers which intake hours are free for a workshop and day.
type IAgendaUseCase interface {
	Slots(ctx context.Context, date string, locationID int64) ([]entities.Slot, error)
}

type AgendaUseCase struct {
	orders    interfaces.IWorkOrderRepository
	workshops interfaces.IWorkshopRepository
}

var _ IAgendaUseCase = (*AgendaUseCase)(nil)

func NewAgendaUseCase(orders interfaces.IWorkOrderRepository, workshops interfaces.IWorkshopRepository) *AgendaUseCase {
	return &AgendaUseCase{orders: orders, workshops: workshops}
}

func (u *AgendaUseCase) Slots(ctx context.Context, date string, locationID int64) ([]entities.Slot, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if locationID <= 0 {
		return nil, ErrInvalidLocation
	}
	workshop, err := u.workshops.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if workshop.ID == 0 {
		return nil, ErrWorkshopNotFound
	}

	booked, err := u.orders.ListBySlot(ctx, locationID, date)
	if err != nil {
		return nil, err
	}
	return entities.DaySlots(occupiedTimes(booked)), nil
}
