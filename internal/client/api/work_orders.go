package api

import (
	"context"
	"strconv"
	"strings"
)

type changeStatusResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// ChangeStatus posts estado/cambiar. orderKey is an order id when numeric,
// otherwise a plate. The returned order is nil when the server did not echo
// it back.
func (c *Client) ChangeStatus(ctx context.Context, orderKey, status, comment string) (*Order, error) {
	fields := [][2]string{{"status", status}, {"comment", comment}}
	key := strings.TrimSpace(orderKey)
	if _, err := strconv.ParseInt(key, 10, 64); err == nil {
		fields = append(fields, [2]string{"order_id", key})
	} else {
		fields = append(fields, [2]string{"plate", key})
	}
	var out changeStatusResponse
	if err := c.postForm(ctx, "estado/cambiar", fields, nil, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

// Assign posts ordenes/:id/asignar.
func (c *Client) Assign(ctx context.Context, orderID int64, mechanicRUT, comment string) (*Order, error) {
	fields := [][2]string{{"mechanic_rut", mechanicRUT}, {"comment", comment}}
	var out changeStatusResponse
	path := "ordenes/" + strconv.FormatInt(orderID, 10) + "/asignar"
	if err := c.postForm(ctx, path, fields, nil, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

type ordersResponse struct {
	Items []Order `json:"items"`
}

func (c *Client) PendingOrders(ctx context.Context) ([]Order, error) {
	var out ordersResponse
	if err := c.getJSON(ctx, "ordenes/pendientes", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) MechanicOrders(ctx context.Context) ([]Order, error) {
	var out ordersResponse
	if err := c.getJSON(ctx, "ordenes/mecanico", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Ping checks the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.getJSON(ctx, "ping", nil, nil)
}
