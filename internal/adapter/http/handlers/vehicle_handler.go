package handlers

import (
	"errors"
	"net/http"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var errPlateRequired = pkg.NewDomainErrorSimple("PLATE_REQUIRED", "Debe indicar la patente.", http.StatusBadRequest)

// VehicleHandler serves the vehicle record ("ficha").
type VehicleHandler struct {
	usecase usecase.IVehicleUseCase
}

func NewVehicleHandler(uc usecase.IVehicleUseCase) *VehicleHandler {
	return &VehicleHandler{usecase: uc}
}

// Ficha handles GET ficha?plate. An unknown vehicle is not an error: the
// response carries vehicle=null.
func (h *VehicleHandler) Ficha(c *gin.Context) {
	var q request.FichaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errPlateRequired.HTTPStatus, errPlateRequired.ToHTTPError())
		return
	}
	ficha, err := h.usecase.Ficha(c.Request.Context(), q.Plate)
	if err != nil {
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFicha(ficha))
}

// History handles GET ficha/ots.
func (h *VehicleHandler) History(c *gin.Context) {
	var q request.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errPlateRequired.HTTPStatus, errPlateRequired.ToHTTPError())
		return
	}
	orders, err := h.usecase.History(c.Request.Context(), q.ToQuery())
	if err != nil {
		appErr := mapVehicleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.WorkOrderListResponse{Success: true, Items: response.FromWorkOrders(orders)})
}

func mapVehicleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_PLATE", "Patente inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDate):
		return pkg.NewDomainErrorSimple("INVALID_DATE", "Fecha inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado inválido.", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
