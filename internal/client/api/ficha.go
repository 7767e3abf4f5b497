package api

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) Ficha(ctx context.Context, plate string) (Ficha, error) {
	q := url.Values{}
	q.Set("plate", plate)
	var out Ficha
	if err := c.getJSON(ctx, "ficha", q, &out); err != nil {
		return Ficha{}, err
	}
	return out, nil
}

// History fetches ficha/ots, newest first.
func (c *Client) History(ctx context.Context, f HistoryFilter) ([]Order, error) {
	q := url.Values{}
	q.Set("plate", f.Plate)
	setIf(q, "from", f.From)
	setIf(q, "to", f.To)
	setIf(q, "status", f.Status)
	if f.Location > 0 {
		q.Set("location", strconv.FormatInt(f.Location, 10))
	}
	var out ordersResponse
	if err := c.getJSON(ctx, "ficha/ots", q, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
