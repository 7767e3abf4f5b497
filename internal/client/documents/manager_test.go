package documents

import (
	"context"
	"strings"
	"testing"

	"taller_flota/internal/client/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	uploads []api.DocumentUpload
	listing api.DocumentsResponse
	listArg struct {
		orderID *int64
		plate   string
	}
}

func (f *fakeTransport) UploadDocument(_ context.Context, in api.DocumentUpload) (api.Document, error) {
	f.uploads = append(f.uploads, in)
	return api.Document{ID: "d1", Type: in.Type, OrderID: in.OrderID}, nil
}

func (f *fakeTransport) ListDocuments(_ context.Context, orderID *int64, plate string) (api.DocumentsResponse, error) {
	f.listArg.orderID, f.listArg.plate = orderID, plate
	return f.listing, nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestManager_Upload(t *testing.T) {
	ctx := context.Background()
	file := func() *strings.Reader { return strings.NewReader("%PDF") }

	cases := []struct {
		name string
		in   UploadInput
		err  error
	}{
		{"no file", UploadInput{Title: "x", Plate: "AB1234"}, ErrFileRequired},
		{"no title", UploadInput{File: file(), Title: "  ", Plate: "AB1234"}, ErrTitleRequired},
		{"bad type", UploadInput{File: file(), Title: "x", Type: "video", Plate: "AB1234"}, ErrInvalidType},
		{"no target", UploadInput{File: file(), Title: "x"}, ErrTargetRequired},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{}
			_, err := NewManager(tr, nil).Upload(ctx, tt.in)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, tr.uploads)
		})
	}

	t.Run("defaults and normalization", func(t *testing.T) {
		tr := &fakeTransport{}
		doc, err := NewManager(tr, nil).Upload(ctx, UploadInput{File: file(), FileName: "a.pdf", Title: " Informe ", Type: "informe", Plate: "ab-1234"})
		require.NoError(t, err)
		assert.Equal(t, "d1", doc.ID)
		require.Len(t, tr.uploads, 1)
		assert.Equal(t, "Informe", tr.uploads[0].Title)
		assert.Equal(t, "INFORME", tr.uploads[0].Type)
		assert.Equal(t, "AB1234", tr.uploads[0].Plate)

		_, err = NewManager(tr, nil).Upload(ctx, UploadInput{File: file(), Title: "Foto", OrderID: int64Ptr(9)})
		require.NoError(t, err)
		assert.Equal(t, "OTRO", tr.uploads[1].Type)
	})
}

func TestManager_List(t *testing.T) {
	ctx := context.Background()
	tr := &fakeTransport{listing: api.DocumentsResponse{
		Kind:           api.DocumentsFlat,
		CurrentOrderID: int64Ptr(7),
		Flat: []api.Document{
			{ID: "a", OrderID: int64Ptr(7)},
			{ID: "b", OrderID: int64Ptr(2)},
			{ID: "c"},
		},
	}}
	m := NewManager(tr, nil)

	_, err := m.List(ctx, nil, " ")
	assert.ErrorIs(t, err, ErrTargetRequired)

	l, err := m.List(ctx, nil, "ab 1234")
	require.NoError(t, err)
	assert.Equal(t, "AB1234", tr.listArg.plate)
	assert.Equal(t, int64(7), *l.CurrentOrderID)
	require.Len(t, l.Current, 1)
	require.Len(t, l.Past, 1)
	require.Len(t, l.VehicleLevel, 1)
	assert.Equal(t, "a", l.Current[0].ID)
	assert.Equal(t, "b", l.Past[0].ID)
	assert.Equal(t, "c", l.VehicleLevel[0].ID)
}

func TestManager_ListFlatWithoutCurrentOrderID(t *testing.T) {
	tr := &fakeTransport{listing: api.DocumentsResponse{
		Kind: api.DocumentsFlat,
		Flat: []api.Document{
			{ID: "a", OrderID: int64Ptr(5)},
			{ID: "b", OrderID: int64Ptr(4)},
			{ID: "c"},
		},
	}}

	l, err := NewManager(tr, nil).List(context.Background(), int64Ptr(5), "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), *tr.listArg.orderID)
	require.NotNil(t, l.CurrentOrderID)
	assert.Equal(t, int64(5), *l.CurrentOrderID)
	require.Len(t, l.Current, 1)
	assert.Equal(t, "a", l.Current[0].ID)
	require.Len(t, l.Past, 1)
	assert.Equal(t, "b", l.Past[0].ID)
	require.Len(t, l.VehicleLevel, 1)

	l, err = NewManager(tr, nil).List(context.Background(), nil, "AB1234")
	require.NoError(t, err)
	assert.Nil(t, l.CurrentOrderID)
	assert.Empty(t, l.Current)
	assert.Len(t, l.Past, 2)
}
