package api

import (
	"context"
	"strconv"
	"time"
)

type Pause struct {
	ID             string     `json:"id"`
	OrderID        int64      `json:"order_id"`
	Reason         string     `json:"reason"`
	Note           string     `json:"note,omitempty"`
	StartedBy      string     `json:"started_by,omitempty"`
	StoppedBy      string     `json:"stopped_by,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	Active         bool       `json:"active"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
}

type pauseResponse struct {
	Pause Pause `json:"pause"`
}

type pausesResponse struct {
	Items []Pause `json:"items"`
}

func pausesPath(orderID int64) string {
	return "ordenes/" + strconv.FormatInt(orderID, 10) + "/pausas"
}

// StartPause posts ordenes/:id/pausas/start. An empty reason lets the server
// apply its default.
func (c *Client) StartPause(ctx context.Context, orderID int64, reason, note string) (Pause, error) {
	var out pauseResponse
	fields := [][2]string{{"reason", reason}, {"note", note}}
	if err := c.postForm(ctx, pausesPath(orderID)+"/start", fields, nil, &out); err != nil {
		return Pause{}, err
	}
	return out.Pause, nil
}

func (c *Client) StopPause(ctx context.Context, orderID int64) (Pause, error) {
	var out pauseResponse
	if err := c.postForm(ctx, pausesPath(orderID)+"/stop", nil, nil, &out); err != nil {
		return Pause{}, err
	}
	return out.Pause, nil
}

func (c *Client) Pauses(ctx context.Context, orderID int64) ([]Pause, error) {
	var out pausesResponse
	if err := c.getJSON(ctx, pausesPath(orderID), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
