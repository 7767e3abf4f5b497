package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidReportQuery = pkg.NewDomainErrorSimple("INVALID_REPORT_QUERY", "Filtros inválidos.", http.StatusBadRequest)

type ReportHandler struct {
	usecase usecase.IReportUseCase
}

func NewReportHandler(uc usecase.IReportUseCase) *ReportHandler {
	return &ReportHandler{usecase: uc}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	var q request.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidReportQuery.HTTPStatus, errInvalidReportQuery.ToHTTPError())
		return
	}
	s, err := h.usecase.Summary(c.Request.Context(), q.ToRange())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSummary(s))
}

func (h *ReportHandler) Orders(c *gin.Context) {
	var q request.OrdersReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidReportQuery.HTTPStatus, errInvalidReportQuery.ToHTTPError())
		return
	}
	rows, err := h.usecase.Orders(c.Request.Context(), q.ToQuery())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrderRows(rows))
}

func (h *ReportHandler) Global(c *gin.Context) {
	var q request.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidReportQuery.HTTPStatus, errInvalidReportQuery.ToHTTPError())
		return
	}
	g, err := h.usecase.Global(c.Request.Context(), q.ToRange())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromGlobal(g))
}

func (h *ReportHandler) Workshops(c *gin.Context) {
	var q request.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidReportQuery.HTTPStatus, errInvalidReportQuery.ToHTTPError())
		return
	}
	stats, err := h.usecase.Workshops(c.Request.Context(), q.ToRange())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkshopStats(stats))
}

func (h *ReportHandler) AverageTimes(c *gin.Context) {
	var q request.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidReportQuery.HTTPStatus, errInvalidReportQuery.ToHTTPError())
		return
	}
	a, err := h.usecase.AverageTimes(c.Request.Context(), q.ToRange())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAverageTimes(a))
}

// ExportOrders streams the filtered listing as an XLSX attachment.
func (h *ReportHandler) ExportOrders(c *gin.Context) {
	var q request.OrdersReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidReportQuery.HTTPStatus, errInvalidReportQuery.ToHTTPError())
		return
	}
	data, contentType, err := h.usecase.ExportOrders(c.Request.Context(), q.ToQuery())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	name := fmt.Sprintf("ots_%s.xlsx", time.Now().Format("20060102_1504"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func mapReportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate):
		return pkg.NewDomainErrorSimple("INVALID_DATE", "Fecha inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_PLATE", "Patente inválida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado inválido.", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
