package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// DocumentsKind tells which listing shape the server answered with.
type DocumentsKind int

const (
	DocumentsFlat DocumentsKind = iota
	DocumentsGrouped
)

// Buckets is the canonical three-way split of a vehicle's documents.
type Buckets struct {
	Current      []Document
	Past         []Document
	VehicleLevel []Document
}

// DocumentsResponse is the documentos listing decoded as a tagged union:
// either a flat list plus the current order id, or the grouped buckets.
type DocumentsResponse struct {
	Kind           DocumentsKind
	CurrentOrderID *int64
	Flat           []Document
	Grouped        Buckets
}

type documentsWire struct {
	CurrentOrderID *int64     `json:"current_order_id"`
	Current        []Document `json:"current"`
	Past           []Document `json:"past"`
	VehicleLevel   []Document `json:"vehicle_level"`
}

// UnmarshalJSON picks the shape by key presence: any "documents" key, even
// null, means the flat list.
func (r *DocumentsResponse) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	var w documentsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.CurrentOrderID = w.CurrentOrderID
	if raw, ok := keys["documents"]; ok {
		r.Kind = DocumentsFlat
		var flat []Document
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := json.Unmarshal(raw, &flat); err != nil {
				return err
			}
		}
		r.Flat = flat
		return nil
	}
	r.Kind = DocumentsGrouped
	r.Grouped = Buckets{Current: w.Current, Past: w.Past, VehicleLevel: w.VehicleLevel}
	return nil
}

// Normalize returns the three buckets using the current order id sent by
// the server, if any.
func (r DocumentsResponse) Normalize() Buckets {
	return r.NormalizeFor(r.CurrentOrderID)
}

// NormalizeFor returns the three buckets whatever shape was received. A flat
// list is partitioned on order_id against current: equal to it, another
// order, or none. Every document lands in exactly one bucket. Grouped
// responses are already split and ignore current.
func (r DocumentsResponse) NormalizeFor(current *int64) Buckets {
	out := Buckets{Current: []Document{}, Past: []Document{}, VehicleLevel: []Document{}}
	if r.Kind == DocumentsGrouped {
		out.Current = append(out.Current, r.Grouped.Current...)
		out.Past = append(out.Past, r.Grouped.Past...)
		out.VehicleLevel = append(out.VehicleLevel, r.Grouped.VehicleLevel...)
		return out
	}
	for _, d := range r.Flat {
		switch {
		case d.OrderID == nil:
			out.VehicleLevel = append(out.VehicleLevel, d)
		case current != nil && *d.OrderID == *current:
			out.Current = append(out.Current, d)
		default:
			out.Past = append(out.Past, d)
		}
	}
	return out
}

// ListDocuments fetches documentos by order id or plate.
func (c *Client) ListDocuments(ctx context.Context, orderID *int64, plate string) (DocumentsResponse, error) {
	q := url.Values{}
	if orderID != nil {
		q.Set("order_id", strconv.FormatInt(*orderID, 10))
	}
	setIf(q, "plate", plate)
	var out DocumentsResponse
	if err := c.getJSON(ctx, "documentos", q, &out); err != nil {
		return DocumentsResponse{}, err
	}
	return out, nil
}

// UploadDocument posts documentos/upload as multipart.
func (c *Client) UploadDocument(ctx context.Context, in DocumentUpload) (Document, error) {
	fields := [][2]string{
		{"title", in.Title},
		{"type", in.Type},
		{"plate", in.Plate},
	}
	if in.OrderID != nil {
		fields = append(fields, [2]string{"order_id", strconv.FormatInt(*in.OrderID, 10)})
	}
	var file *filePart
	if in.File != nil {
		name := in.FileName
		if name == "" {
			name = "archivo"
		}
		file = &filePart{field: "file", fileName: name, content: in.File}
	}
	var out struct {
		Document Document `json:"document"`
	}
	if err := c.postForm(ctx, "documentos/upload", fields, file, &out); err != nil {
		return Document{}, err
	}
	if out.Document.ID == "" {
		return Document{}, fmt.Errorf("%w: upload response without document", ErrCommunication)
	}
	return out.Document, nil
}
