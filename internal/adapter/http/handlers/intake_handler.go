package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidIntakePayload = pkg.NewDomainErrorSimple("INVALID_INTAKE_INPUT", "Complete patente, fecha y taller.", http.StatusBadRequest)

type IntakeHandler struct {
	usecase usecase.IIntakeUseCase
}

func NewIntakeHandler(uc usecase.IIntakeUseCase) *IntakeHandler {
	return &IntakeHandler{usecase: uc}
}

// Create handles POST ingresos/create.
//
// "nuevo_chofer" and "vehiculo_no_existe" are answered with 200 and
// success=false so the form can reveal the matching sub-form.
func (h *IntakeHandler) Create(c *gin.Context) {
	var payload request.IntakeRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidIntakePayload.HTTPStatus, errInvalidIntakePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.Register(c.Request.Context(), payload.ToCommand(actor(c)))
	if err != nil {
		appErr := mapIntakeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	switch res.Outcome {
	case usecase.IntakeOK:
		order := response.FromWorkOrder(res.Order)
		c.JSON(http.StatusCreated, response.IntakeResponse{
			Success: true,
			Status:  string(res.Outcome),
			Message: fmt.Sprintf("Ingreso registrado. OT #%d creada.", res.Order.ID),
			Order:   &order,
		})
	case usecase.IntakeNewDriver:
		c.JSON(http.StatusOK, response.IntakeResponse{
			Status:  string(res.Outcome),
			Message: "El chofer no está registrado. Complete sus datos.",
		})
	case usecase.IntakeVehicleMissing:
		c.JSON(http.StatusOK, response.IntakeResponse{
			Status:  string(res.Outcome),
			Message: "El vehículo no está registrado. Complete sus datos.",
		})
	}
}

func mapIntakeError(err error) *pkg.AppError {
	var active *usecase.ActiveOrderError
	switch {
	case errors.As(err, &active):
		return pkg.NewDomainError("ACTIVE_ORDER_EXISTS", fmt.Sprintf("Ya existe una OT activa #%d para este vehículo.", active.OrderID), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrActiveOrderExists):
		return pkg.NewDomainErrorSimple("ACTIVE_ORDER_EXISTS", "Ya existe una OT activa para este vehículo.", http.StatusConflict)
	case errors.Is(err, usecase.ErrSlotOccupied):
		return pkg.NewDomainErrorSimple("SLOT_OCCUPIED", "El horario seleccionado ya está ocupado.", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_PLATE", "Patente inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDate):
		return pkg.NewDomainErrorSimple("INVALID_DATE", "Fecha inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTime):
		return pkg.NewDomainErrorSimple("INVALID_TIME", "Horario inválido.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidLocation):
		return pkg.NewDomainErrorSimple("INVALID_LOCATION", "Taller inválido.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkshopNotFound):
		return pkg.NewDomainErrorSimple("WORKSHOP_NOT_FOUND", "Taller no encontrado.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidVehicleData):
		return pkg.NewDomainErrorSimple("INVALID_VEHICLE", "Datos del vehículo incompletos.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDriverData):
		return pkg.NewDomainErrorSimple("INVALID_DRIVER", "Datos del chofer incompletos.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDriverAlreadyExists):
		return pkg.NewDomainErrorSimple("DRIVER_EXISTS", "El nombre de usuario ya está en uso.", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
