package handlers

import (
	"errors"
	"net/http"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 20 << 20

type DocumentHandler struct {
	usecase     usecase.IDocumentUseCase
	mediaPrefix string
}

// NewDocumentHandler serves stored paths under mediaPrefix (e.g. "/media/").
func NewDocumentHandler(uc usecase.IDocumentUseCase, mediaPrefix string) *DocumentHandler {
	return &DocumentHandler{usecase: uc, mediaPrefix: mediaPrefix}
}

// Upload handles POST documentos/upload (multipart).
func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var payload request.UploadDocumentRequest
	if err := c.ShouldBind(&payload); err != nil {
		appErr := mapDocumentError(usecase.ErrFileRequired)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		appErr := mapDocumentError(usecase.ErrFileRequired)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	orderID, err := request.ResolveOrderID(payload.OrderID)
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer file.Close()

	doc, err := h.usecase.Upload(c.Request.Context(), usecase.UploadCommand{
		File:     file,
		FileName: fileHeader.Filename,
		Title:    payload.Title,
		Type:     entities.DocumentType(payload.Type),
		OrderID:  orderID,
		Plate:    payload.Plate,
	})
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.UploadDocumentResponse{Success: true, Document: response.FromDocument(doc, h.mediaPrefix)})
}

// List handles GET documentos?order_id|plate and answers with the grouped
// shape.
func (h *DocumentHandler) List(c *gin.Context) {
	var q request.ListDocumentsQuery
	_ = c.ShouldBindQuery(&q)

	orderID, err := request.ResolveOrderID(q.OrderID)
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	grouped, err := h.usecase.ListGrouped(c.Request.Context(), orderID, q.Plate)
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromGroupedDocuments(grouped, h.mediaPrefix))
}

func mapDocumentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrFileRequired):
		return pkg.NewDomainErrorSimple("FILE_REQUIRED", "Debe adjuntar un archivo.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTitleRequired):
		return pkg.NewDomainErrorSimple("TITLE_REQUIRED", "Debe indicar un título.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDocumentType):
		return pkg.NewDomainErrorSimple("INVALID_DOCUMENT_TYPE", "Tipo de documento inválido.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDocumentTargetRequired):
		return pkg.NewDomainErrorSimple("TARGET_REQUIRED", "Debe indicar una OT o patente.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidWorkOrderID), errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Debe indicar una OT o patente válida.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "OT no encontrada.", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
