package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/adapter/http/middleware"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS_INPUT", "Debe indicar la OT o patente y el nuevo estado.", http.StatusBadRequest)
	errInvalidAssignPayload = pkg.NewDomainErrorSimple("INVALID_ASSIGN_INPUT", "Debe indicar el mecánico.", http.StatusBadRequest)
)

// WorkOrderHandler handles status changes and the supervisor/mechanic lists.
type WorkOrderHandler struct {
	usecase usecase.IWorkOrderUseCase
}

func NewWorkOrderHandler(uc usecase.IWorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{usecase: uc}
}

// ChangeStatus handles POST estado/cambiar. The updated order is echoed so the
// panel can redraw from the server state.
func (h *WorkOrderHandler) ChangeStatus(c *gin.Context) {
	var payload request.ChangeStatusRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand(actor(c))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, err := h.usecase.ChangeStatus(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.ChangeStatusResponse{
		Success: true,
		Message: fmt.Sprintf("OT #%d actualizada a %s.", order.ID, order.Status),
		Order:   response.FromWorkOrder(order),
	})
}

// Assign handles POST ordenes/:id/asignar.
func (h *WorkOrderHandler) Assign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		appErr := mapWorkOrderError(usecase.ErrInvalidWorkOrderID)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.AssignRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidAssignPayload.HTTPStatus, errInvalidAssignPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Assign(c.Request.Context(), id, payload.MechanicRUT, payload.Comment, actor(c))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.ChangeStatusResponse{
		Success: true,
		Message: fmt.Sprintf("OT #%d asignada.", order.ID),
		Order:   response.FromWorkOrder(order),
	})
}

// ListPending handles GET ordenes/pendientes for the caller's workshop.
func (h *WorkOrderHandler) ListPending(c *gin.Context) {
	claims, _ := middleware.Session(c)
	orders, err := h.usecase.ListPendingByWorkshop(c.Request.Context(), claims.WorkshopID)
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.WorkOrderListResponse{Success: true, Items: response.FromWorkOrders(orders)})
}

// ListForMechanic handles GET ordenes/mecanico for the calling mechanic.
func (h *WorkOrderHandler) ListForMechanic(c *gin.Context) {
	claims, _ := middleware.Session(c)
	orders, err := h.usecase.ListForMechanic(c.Request.Context(), claims.RUT)
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.WorkOrderListResponse{Success: true, Items: response.FromWorkOrders(orders)})
}

func mapWorkOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrCommentRequired):
		return pkg.NewDomainErrorSimple("COMMENT_REQUIRED", "El comentario es obligatorio.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado inválido.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidWorkOrderID), errors.Is(err, usecase.ErrInvalidPlate), errors.Is(err, request.ErrMissingOrderKey):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Debe indicar una OT o patente válida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransitionNotAllowed):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", "Transición de estado no permitida.", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "La OT fue modificada por otro usuario. Recargue e intente nuevamente.", http.StatusConflict)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "No se encontró una OT activa.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "No tiene permisos para esta acción.", http.StatusForbidden)
	case errors.Is(err, usecase.ErrMechanicNotFound):
		return pkg.NewDomainErrorSimple("MECHANIC_NOT_FOUND", "Mecánico no encontrado.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMechanicWrongWorkshop):
		return pkg.NewDomainErrorSimple("MECHANIC_WRONG_WORKSHOP", "El mecánico no pertenece al taller de la OT.", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
