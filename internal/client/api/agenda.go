package api

import (
	"context"
	"net/url"
	"strconv"
)

type slotsResponse struct {
	Slots []Slot `json:"slots"`
}

// Slots fetches agenda/slots for a day and workshop, in server order.
func (c *Client) Slots(ctx context.Context, date string, locationID int64) ([]Slot, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("location_id", strconv.FormatInt(locationID, 10))
	var out slotsResponse
	if err := c.getJSON(ctx, "agenda/slots", q, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}
