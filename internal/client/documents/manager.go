package documents

import (
	"context"
	"errors"
	"io"
	"strings"

	"taller_flota/internal/client/api"
	"taller_flota/internal/domain/entities"

	"go.uber.org/zap"
)

var (
	ErrFileRequired   = errors.New("archivo requerido")
	ErrTitleRequired  = errors.New("título requerido")
	ErrInvalidType    = errors.New("tipo de documento inválido")
	ErrTargetRequired = errors.New("debe indicar OT o patente")
)

type Transport interface {
	UploadDocument(ctx context.Context, in api.DocumentUpload) (api.Document, error)
	ListDocuments(ctx context.Context, orderID *int64, plate string) (api.DocumentsResponse, error)
}

type UploadInput struct {
	File     io.Reader
	FileName string
	Title    string
	Type     string
	OrderID  *int64
	Plate    string
}

// Listing is the normalized view of a vehicle's documents.
type Listing struct {
	CurrentOrderID *int64
	api.Buckets
}

type Manager struct {
	client Transport
	logger *zap.Logger
}

func NewManager(client Transport, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{client: client, logger: logger}
}

// Upload checks the input locally before sending; the type defaults to OTRO.
func (m *Manager) Upload(ctx context.Context, in UploadInput) (api.Document, error) {
	if in.File == nil {
		return api.Document{}, ErrFileRequired
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return api.Document{}, ErrTitleRequired
	}
	docType := strings.ToUpper(strings.TrimSpace(in.Type))
	if docType == "" {
		docType = string(entities.DocumentOtro)
	}
	if !entities.DocumentType(docType).Valid() {
		return api.Document{}, ErrInvalidType
	}
	plate := entities.NormalizePlate(in.Plate)
	if in.OrderID == nil && plate == "" {
		return api.Document{}, ErrTargetRequired
	}

	doc, err := m.client.UploadDocument(ctx, api.DocumentUpload{
		File:     in.File,
		FileName: in.FileName,
		Title:    title,
		Type:     docType,
		OrderID:  in.OrderID,
		Plate:    plate,
	})
	if err != nil {
		return api.Document{}, err
	}
	m.logger.Info("document uploaded", zap.String("id", doc.ID), zap.String("type", doc.Type))
	return doc, nil
}

// List fetches and normalizes the documents of an order or a plate. A flat
// listing without current_order_id is split against the requested orderID,
// the order the caller has open.
func (m *Manager) List(ctx context.Context, orderID *int64, plate string) (Listing, error) {
	plate = entities.NormalizePlate(plate)
	if orderID == nil && plate == "" {
		return Listing{}, ErrTargetRequired
	}
	resp, err := m.client.ListDocuments(ctx, orderID, plate)
	if err != nil {
		return Listing{}, err
	}
	current := resp.CurrentOrderID
	if current == nil {
		current = orderID
	}
	return Listing{CurrentOrderID: current, Buckets: resp.NormalizeFor(current)}, nil
}
