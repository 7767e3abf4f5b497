package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPausePayload = pkg.NewDomainErrorSimple("INVALID_PAUSE_INPUT", "Datos de pausa inválidos.", http.StatusBadRequest)

// PauseHandler starts, stops and lists work stoppages on an order.
type PauseHandler struct {
	usecase usecase.IPauseUseCase
	now     func() time.Time
}

func NewPauseHandler(uc usecase.IPauseUseCase) *PauseHandler {
	return &PauseHandler{usecase: uc, now: time.Now}
}

// Start handles POST ordenes/:id/pausas/start.
func (h *PauseHandler) Start(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var payload request.StartPauseRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidPausePayload.HTTPStatus, errInvalidPausePayload.ToHTTPError())
		return
	}

	p, err := h.usecase.Start(c.Request.Context(), id, payload.Reason, payload.Note, actor(c))
	if err != nil {
		appErr := mapPauseError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.PauseActionResponse{
		Success: true,
		Message: fmt.Sprintf("Pausa iniciada en OT #%d.", id),
		Pause:   response.FromPause(p, h.now()),
	})
}

// Stop handles POST ordenes/:id/pausas/stop.
func (h *PauseHandler) Stop(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	p, err := h.usecase.Stop(c.Request.Context(), id, actor(c))
	if err != nil {
		appErr := mapPauseError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.PauseActionResponse{
		Success: true,
		Message: fmt.Sprintf("Pausa finalizada en OT #%d.", id),
		Pause:   response.FromPause(p, h.now()),
	})
}

// List handles GET ordenes/:id/pausas, newest first.
func (h *PauseHandler) List(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	pauses, err := h.usecase.List(c.Request.Context(), id)
	if err != nil {
		appErr := mapPauseError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.PauseListResponse{Success: true, Items: response.FromPauses(pauses, h.now())})
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		appErr := mapPauseError(usecase.ErrInvalidWorkOrderID)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return 0, false
	}
	return id, true
}

func mapPauseError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidWorkOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "OT inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPauseReason):
		return pkg.NewDomainErrorSimple("INVALID_PAUSE_REASON", "El motivo no puede superar 120 caracteres.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "OT no encontrada.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkOrderClosed):
		return pkg.NewDomainErrorSimple("WORK_ORDER_CLOSED", "La OT está cerrada.", http.StatusConflict)
	case errors.Is(err, usecase.ErrPauseAlreadyActive):
		return pkg.NewDomainErrorSimple("PAUSE_ACTIVE", "Ya hay una pausa activa para esta OT.", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoActivePause):
		return pkg.NewDomainErrorSimple("NO_ACTIVE_PAUSE", "No hay pausa activa para esta OT.", http.StatusConflict)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "No tiene permisos para esta acción.", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
