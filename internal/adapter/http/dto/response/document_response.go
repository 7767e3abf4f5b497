package response

import (
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
)

type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	OrderID   *int64    `json:"order_id"`
	Plate     string    `json:"plate,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromDocument builds the public URL by joining mediaPrefix and the stored
// relative path.
func FromDocument(d entities.Document, mediaPrefix string) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Type:      string(d.Type),
		URL:       mediaPrefix + d.Path,
		OrderID:   d.OrderID,
		Plate:     d.Plate,
		CreatedAt: d.CreatedAt,
	}
}

func fromDocuments(docs []entities.Document, mediaPrefix string) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDocument(d, mediaPrefix))
	}
	return out
}

type UploadDocumentResponse struct {
	Success  bool             `json:"success"`
	Document DocumentResponse `json:"document"`
}

// GroupedDocumentsResponse is the three-bucket listing shape.
type GroupedDocumentsResponse struct {
	Success        bool               `json:"success"`
	CurrentOrderID *int64             `json:"current_order_id"`
	Current        []DocumentResponse `json:"current"`
	Past           []DocumentResponse `json:"past"`
	VehicleLevel   []DocumentResponse `json:"vehicle_level"`
}

func FromGroupedDocuments(g usecase.GroupedDocuments, mediaPrefix string) GroupedDocumentsResponse {
	return GroupedDocumentsResponse{
		Success:        true,
		CurrentOrderID: g.CurrentOrderID,
		Current:        fromDocuments(g.Current, mediaPrefix),
		Past:           fromDocuments(g.Past, mediaPrefix),
		VehicleLevel:   fromDocuments(g.VehicleLevel, mediaPrefix),
	}
}
