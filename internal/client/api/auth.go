package api

import "context"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	if err := c.postJSON(ctx, "autenticacion/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return LoginResult{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// Logout revokes the current token server-side and forgets it locally, even
// when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.postJSON(ctx, "autenticacion/logout", struct{}{}, nil)
}
