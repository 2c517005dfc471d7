// Package api is a small typed client for the authgate HTTP API, used by
// the CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/authgate/authgate/internal/common"
)

// Identity is the registration result returned by the server.
type Identity struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Profile is the authenticated-identity view behind the protected endpoint.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, email, displayName, secret string) (*Identity, error) {
	body := map[string]string{
		"email":        email,
		"display_name": displayName,
		"secret":       secret,
	}

	var out Identity
	if err := c.post(ctx, "/api/register", body, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, secret string) (string, error) {
	body := map[string]string{
		"email":  email,
		"secret": secret,
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/api/login", body, http.StatusOK, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerSchemePrefix+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var out Profile
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body any, wantStatus int, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, wantStatus); err != nil {
		return err
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusBadRequest:
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return fmt.Errorf("%w: %s", common.ErrorValidation, body.Error)
		}
		return common.ErrorValidation
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
