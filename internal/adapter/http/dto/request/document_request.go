package request

import (
	"strconv"
	"strings"

	"taller_flota/internal/usecase"
)

type UploadDocumentRequest struct {
	Title   string `form:"title"`
	Type    string `form:"type"`
	OrderID string `form:"order_id"`
	Plate   string `form:"plate"`
}

type ListDocumentsQuery struct {
	OrderID string `form:"order_id"`
	Plate   string `form:"plate"`
}

// ResolveOrderID returns nil when order_id is absent.
func ResolveOrderID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, usecase.ErrInvalidWorkOrderID
	}
	return &id, nil
}
