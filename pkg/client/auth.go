package client

import (
	"context"
	"net/http"

	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository"
)

var _ repository.AuthRepo = (*Client)(nil)

// Login exchanges credentials for a token. No Authorization header is sent.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: req, public: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/register", body: req, public: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
