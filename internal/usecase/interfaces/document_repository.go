package interfaces

import (
	"context"
	"io"
	"taller_flota/internal/domain/entities"
)

type IDocumentRepository interface {
	Create(ctx context.Context, d entities.Document) (entities.Document, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]entities.Document, error)
	ListByPlate(ctx context.Context, plate string) ([]entities.Document, error)
}

// IFileStorage stores uploaded bytes and returns the relative path to keep in
// the document metadata.
type IFileStorage interface {
	Save(file io.Reader, originalFileName string, prefix string) (string, error)
}
