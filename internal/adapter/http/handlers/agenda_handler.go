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

var errInvalidSlotsQuery = pkg.NewDomainErrorSimple("INVALID_SLOTS_QUERY", "Debe indicar fecha y taller.", http.StatusBadRequest)

type AgendaHandler struct {
	usecase usecase.IAgendaUseCase
}

func NewAgendaHandler(uc usecase.IAgendaUseCase) *AgendaHandler {
	return &AgendaHandler{usecase: uc}
}

// Slots handles GET agenda/slots?date&location_id. Slots are returned in
// chronological order.
func (h *AgendaHandler) Slots(c *gin.Context) {
	var q request.SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidSlotsQuery.HTTPStatus, errInvalidSlotsQuery.ToHTTPError())
		return
	}

	slots, err := h.usecase.Slots(c.Request.Context(), q.Date, q.LocationID)
	if err != nil {
		appErr := mapAgendaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSlots(slots))
}

func mapAgendaError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate):
		return pkg.NewDomainErrorSimple("INVALID_DATE", "Fecha inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidLocation):
		return pkg.NewDomainErrorSimple("INVALID_LOCATION", "Taller inválido.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkshopNotFound):
		return pkg.NewDomainErrorSimple("WORKSHOP_NOT_FOUND", "Taller no encontrado.", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
