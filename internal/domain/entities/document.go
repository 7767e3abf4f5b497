package entities

import "time"

type DocumentType string

const (
	DocumentFoto    DocumentType = "FOTO"
	DocumentInforme DocumentType = "INFORME"
	DocumentOtro    DocumentType = "OTRO"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentFoto, DocumentInforme, DocumentOtro:
		return true
	default:
		return false
	}
}

// Document is an uploaded file attached to an order, a vehicle, or both.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI plate-index: plate
//   - GSI order_id-index: order_id
type Document struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      DocumentType `json:"type"`
	Path      string       `json:"path"`
	OrderID   *int64       `json:"order_id,omitempty"`
	Plate     string       `json:"plate,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
