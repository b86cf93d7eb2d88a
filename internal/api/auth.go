package api

import (
	"context"
	"net/http"

	"learnhub_client/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against POST /login. The caller decides whether to keep the token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/signup", signupRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout only forgets the token; the backend keeps no session.
func (c *Client) Logout() {
	c.tokens.ClearToken()
}

func (c *Client) SetToken(token string) {
	c.tokens.SetToken(token)
}
