package api

import "context"

// Signup registers a new account and returns the session token. The server
// rejects already-registered emails; that comes back as an ordinary error.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	var out struct {
		Signup *string `json:"signup"`
	}
	err := c.do(ctx, "signup", mutationSignup, map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Signup == nil || *out.Signup == "" {
		return "", ErrMalformedResponse
	}
	return *out.Signup, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Login *string `json:"login"`
	}
	err := c.do(ctx, "login", mutationLogin, map[string]any{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Login == nil || *out.Login == "" {
		return "", ErrMalformedResponse
	}
	return *out.Login, nil
}
