package api

import (
	"context"
	"fmt"
	"net/http"
)

// RawUser is the user record exactly as the auth service sends it. Field
// naming follows the service's snake/lower-case convention; nothing outside
// the session package should consume this shape directly.
type RawUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginResponse uses a pointer for the user so a missing field is
// distinguishable from a zero value.
type LoginResponse struct {
	User  *RawUser `json:"user"`
	Token string   `json:"token"`
}

// AuthClient talks to the external auth service.
type AuthClient struct {
	Client
}

func NewAuthClient(addr string, hc *http.Client) *AuthClient {
	return &AuthClient{Client: newClient(addr, hc)}
}

func (c *AuthClient) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/auth/login"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out LoginResponse
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	return &out, nil
}

func (c *AuthClient) Register(ctx context.Context, in RegisterRequest) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/auth/register"), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("auth: register: %w", err)
	}
	return nil
}
