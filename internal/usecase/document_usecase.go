package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFileRequired           = errors.New("file required")
	ErrTitleRequired          = errors.New("title required")
	ErrInvalidDocumentType    = errors.New("invalid document type")
	ErrDocumentTargetRequired = errors.New("order id or plate required")
)

const documentsPrefix = "documentos"

type UploadCommand struct {
	File     io.Reader
	FileName string
	Title    string
	Type     entities.DocumentType
	OrderID  *int64
	Plate    string
}

// GroupedDocuments splits a vehicle's documents by the order they belong to.
type GroupedDocuments struct {
	CurrentOrderID *int64
	Current        []entities.Document
	Past           []entities.Document
	VehicleLevel   []entities.Document
}

type IDocumentUseCase interface {
	Upload(ctx context.Context, cmd UploadCommand) (entities.Document, error)
	ListGrouped(ctx context.Context, orderID *int64, plate string) (GroupedDocuments, error)
}

type DocumentUseCase struct {
	docs    interfaces.IDocumentRepository
	orders  interfaces.IWorkOrderRepository
	storage interfaces.IFileStorage
	logger  *zap.Logger
	now     func() time.Time
}

var _ IDocumentUseCase = (*DocumentUseCase)(nil)

func NewDocumentUseCase(
	docs interfaces.IDocumentRepository,
	orders interfaces.IWorkOrderRepository,
	storage interfaces.IFileStorage,
	logger *zap.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, orders: orders, storage: storage, logger: orNop(logger), now: time.Now}
}

func (u *DocumentUseCase) Upload(ctx context.Context, cmd UploadCommand) (entities.Document, error) {
	if cmd.File == nil {
		return entities.Document{}, ErrFileRequired
	}
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return entities.Document{}, ErrTitleRequired
	}
	docType := entities.DocumentType(strings.ToUpper(strings.TrimSpace(string(cmd.Type))))
	if docType == "" {
		docType = entities.DocumentOtro
	}
	if !docType.Valid() {
		return entities.Document{}, ErrInvalidDocumentType
	}
	if cmd.OrderID == nil && strings.TrimSpace(cmd.Plate) == "" {
		return entities.Document{}, ErrDocumentTargetRequired
	}

	var plate string
	if strings.TrimSpace(cmd.Plate) != "" {
		p, err := resolvePlate(cmd.Plate)
		if err != nil {
			return entities.Document{}, err
		}
		plate = p
	}

	var orderID *int64
	if cmd.OrderID != nil {
		order, err := u.orders.GetByID(ctx, *cmd.OrderID)
		if err != nil {
			return entities.Document{}, err
		}
		if order.ID == 0 {
			return entities.Document{}, ErrWorkOrderNotFound
		}
		id := order.ID
		orderID = &id
		if plate == "" {
			plate = order.Plate
		}
	}

	path, err := u.storage.Save(cmd.File, cmd.FileName, documentsPrefix)
	if err != nil {
		return entities.Document{}, err
	}

	doc := entities.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Type:      docType,
		Path:      path,
		OrderID:   orderID,
		Plate:     plate,
		CreatedAt: u.now().UTC(),
	}
	created, err := u.docs.Create(ctx, doc)
	if err != nil {
		return entities.Document{}, err
	}
	u.logger.Info("[document][usecase] uploaded",
		zap.String("document_id", created.ID),
		zap.String("plate", plate),
		zap.String("type", string(docType)))
	return created, nil
}

func (u *DocumentUseCase) ListGrouped(ctx context.Context, orderID *int64, plate string) (GroupedDocuments, error) {
	var current entities.WorkOrder
	switch {
	case orderID != nil:
		o, err := u.orders.GetByID(ctx, *orderID)
		if err != nil {
			return GroupedDocuments{}, err
		}
		if o.ID == 0 {
			return GroupedDocuments{}, ErrWorkOrderNotFound
		}
		current = o
		plate = o.Plate
	case strings.TrimSpace(plate) != "":
		p, err := resolvePlate(plate)
		if err != nil {
			return GroupedDocuments{}, err
		}
		plate = p
		orders, err := u.orders.ListByPlate(ctx, plate)
		if err != nil {
			return GroupedDocuments{}, err
		}
		current, _ = latestActive(orders)
	default:
		return GroupedDocuments{}, ErrDocumentTargetRequired
	}

	byPlate, err := u.docs.ListByPlate(ctx, plate)
	if err != nil {
		return GroupedDocuments{}, err
	}
	all := byPlate
	if current.ID != 0 {
		byOrder, err := u.docs.ListByOrderID(ctx, current.ID)
		if err != nil {
			return GroupedDocuments{}, err
		}
		all = mergeDocuments(byPlate, byOrder)
	}

	out := GroupedDocuments{
		Current:      []entities.Document{},
		Past:         []entities.Document{},
		VehicleLevel: []entities.Document{},
	}
	if current.ID != 0 {
		id := current.ID
		out.CurrentOrderID = &id
	}
	for _, d := range all {
		switch {
		case d.OrderID == nil:
			out.VehicleLevel = append(out.VehicleLevel, d)
		case current.ID != 0 && *d.OrderID == current.ID:
			out.Current = append(out.Current, d)
		default:
			out.Past = append(out.Past, d)
		}
	}
	return out, nil
}

func mergeDocuments(a, b []entities.Document) []entities.Document {
	seen := make(map[string]bool, len(a))
	out := make([]entities.Document, 0, len(a)+len(b))
	for _, d := range append(append([]entities.Document(nil), a...), b...) {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		out = append(out, d)
	}
	return out
}
