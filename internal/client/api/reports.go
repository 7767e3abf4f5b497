package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func rangeQuery(from, to string) url.Values {
	q := url.Values{}
	setIf(q, "from", from)
	setIf(q, "to", to)
	return q
}

func (f OrdersFilter) query() url.Values {
	q := rangeQuery(f.From, f.To)
	setIf(q, "plate", f.Plate)
	setIf(q, "status", f.Status)
	setIf(q, "creator", f.Creator)
	if f.LocationID > 0 {
		q.Set("location_id", strconv.FormatInt(f.LocationID, 10))
	}
	return q
}

func (c *Client) ReportSummary(ctx context.Context, from, to string) (Summary, error) {
	var out Summary
	err := c.getJSON(ctx, "reportes/api/summary", rangeQuery(from, to), &out)
	return out, err
}

func (c *Client) ReportOrders(ctx context.Context, f OrdersFilter) ([]OrderRow, error) {
	var out struct {
		Items []OrderRow `json:"items"`
	}
	if err := c.getJSON(ctx, "reportes/api/ots", f.query(), &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ReportGlobal(ctx context.Context, from, to string) (Global, error) {
	var out Global
	err := c.getJSON(ctx, "reportes/api/resumen", rangeQuery(from, to), &out)
	return out, err
}

func (c *Client) ReportWorkshops(ctx context.Context, from, to string) ([]WorkshopStats, error) {
	var out struct {
		Items []WorkshopStats `json:"items"`
	}
	if err := c.getJSON(ctx, "reportes/api/talleres", rangeQuery(from, to), &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ReportAverageTimes(ctx context.Context, from, to string) (AverageTimes, error) {
	var out AverageTimes
	err := c.getJSON(ctx, "reportes/api/tiempos", rangeQuery(from, to), &out)
	return out, err
}

// ExportOrders downloads the XLSX listing. Errors still arrive as JSON.
func (c *Client) ExportOrders(ctx context.Context, f OrdersFilter) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("reportes/api/ots/export", f.query()), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrCommunication, err)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	defer resp.Body.Close()

	data, err := readAll(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		raw := rawResponse{status: resp.StatusCode, body: data}
		if jsonErr := decodeEnvelope(data, &raw.env); jsonErr != nil {
			return nil, fmt.Errorf("%w: status %d", ErrCommunication, resp.StatusCode)
		}
		return nil, raw.businessError()
	}
	return data, nil
}
