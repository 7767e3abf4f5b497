package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidGatePayload = pkg.NewDomainErrorSimple("INVALID_GATE_INPUT", "Debe indicar la patente.", http.StatusBadRequest)

// GateHandler serves the guard's entry and exit screen.
type GateHandler struct {
	usecase usecase.IGateUseCase
}

func NewGateHandler(uc usecase.IGateUseCase) *GateHandler {
	return &GateHandler{usecase: uc}
}

// Lookup handles GET control-acceso?plate=.
func (h *GateHandler) Lookup(c *gin.Context) {
	status, err := h.usecase.Lookup(c.Request.Context(), c.Query("plate"), actor(c))
	if err != nil {
		appErr := mapGateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromGateStatus(status))
}

// Entry handles POST control-acceso/entrada.
func (h *GateHandler) Entry(c *gin.Context) {
	var payload request.GateEntryRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidGatePayload.HTTPStatus, errInvalidGatePayload.ToHTTPError())
		return
	}
	rec, err := h.usecase.RegisterEntry(c.Request.Context(), payload.ToCommand(actor(c)))
	if err != nil {
		appErr := mapGateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	msg := "Ingreso registrado."
	if rec.Forced {
		msg = "Ingreso forzado registrado."
	}
	c.JSON(http.StatusCreated, response.GateActionResponse{Success: true, Message: msg, Record: response.FromAccessRecord(rec)})
}

// Exit handles POST control-acceso/salida.
func (h *GateHandler) Exit(c *gin.Context) {
	var payload request.GateExitRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidGatePayload.HTTPStatus, errInvalidGatePayload.ToHTTPError())
		return
	}
	rec, err := h.usecase.RegisterExit(c.Request.Context(), payload.ToCommand(actor(c)))
	if err != nil {
		appErr := mapGateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	msg := "Salida registrada."
	if payload.Force {
		msg = "Salida forzada registrada."
	}
	c.JSON(http.StatusOK, response.GateActionResponse{Success: true, Message: msg, Record: response.FromAccessRecord(rec)})
}

// History handles GET control-acceso/historial?plate=.
func (h *GateHandler) History(c *gin.Context) {
	records, err := h.usecase.History(c.Request.Context(), c.Query("plate"), actor(c))
	if err != nil {
		appErr := mapGateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.AccessHistoryResponse{Success: true, Items: response.FromAccessRecords(records)})
}

func mapGateError(err error) *pkg.AppError {
	var (
		mismatch    *usecase.DriverMismatchError
		notReleased *usecase.OrderNotReleasedError
	)
	switch {
	case errors.As(err, &mismatch):
		return pkg.NewDomainError("DRIVER_MISMATCH", fmt.Sprintf("El chofer no coincide con el esperado (%s). Use ingreso forzado con motivo.", strings.Join(mismatch.Expected, " / ")), err, http.StatusConflict)
	case errors.As(err, &notReleased):
		if notReleased.OrderID == 0 {
			return pkg.NewDomainError("EXIT_NOT_RELEASED", "El vehículo no tiene OT que autorice la salida. Use salida forzada con motivo.", err, http.StatusConflict)
		}
		return pkg.NewDomainError("EXIT_NOT_RELEASED", fmt.Sprintf("La OT #%d está en estado %s. Use salida forzada con motivo.", notReleased.OrderID, notReleased.Status), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_PLATE", "Patente inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("VEHICLE_NOT_FOUND", "Vehículo no encontrado.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrGateDriverRequired):
		return pkg.NewDomainErrorSimple("DRIVER_REQUIRED", "Debe indicar el RUT del chofer.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrGateDriverNotFound):
		return pkg.NewDomainErrorSimple("DRIVER_NOT_FOUND", "Chofer no encontrado.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrForceReasonRequired):
		return pkg.NewDomainErrorSimple("FORCE_REASON_REQUIRED", "Debe indicar el motivo de la operación forzada.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAccessAlreadyOpen):
		return pkg.NewDomainErrorSimple("ALREADY_INSIDE", "El vehículo ya está dentro del recinto.", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoOpenAccess):
		return pkg.NewDomainErrorSimple("NOT_INSIDE", "El vehículo no tiene un ingreso abierto.", http.StatusConflict)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "No tiene permisos para esta acción.", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
