package request

import (
	"errors"
	"strconv"
	"strings"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

var ErrMissingOrderKey = errors.New("order_id or plate required")

// ChangeStatusRequest identifies the order by order_id or by plate.
type ChangeStatusRequest struct {
	OrderID string `form:"order_id" json:"order_id"`
	Plate   string `form:"plate" json:"plate"`
	Status  string `form:"status" json:"status" binding:"required"`
	Comment string `form:"comment" json:"comment"`
}

func (r ChangeStatusRequest) ToCommand(actor entities.Employee) (usecase.ChangeStatusCommand, error) {
	cmd := usecase.ChangeStatusCommand{
		Plate:   strings.TrimSpace(r.Plate),
		Status:  entities.WorkOrderStatus(strings.TrimSpace(r.Status)),
		Comment: r.Comment,
		Actor:   actor,
	}
	if v := strings.TrimSpace(r.OrderID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return usecase.ChangeStatusCommand{}, usecase.ErrInvalidWorkOrderID
		}
		cmd.OrderID = id
	}
	if cmd.OrderID == 0 && cmd.Plate == "" {
		return usecase.ChangeStatusCommand{}, ErrMissingOrderKey
	}
	return cmd, nil
}

type AssignRequest struct {
	MechanicRUT string `form:"mechanic_rut" json:"mechanic_rut" binding:"required"`
	Comment     string `form:"comment" json:"comment"`
}
