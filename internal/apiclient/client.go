// Package apiclient talks to the product-management REST API. Every method is
// a single best-effort round trip: no retries, no timeouts, no cancellation
// beyond the caller's context.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"productmanager/internal/apierr"
	"productmanager/internal/models"
)

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request goes out unauthenticated and the backend is expected to
// reject it.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
		tokens: tokens,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &resp, "Login failed")
	if err != nil {
		return nil, err
	}
	return &models.Session{Email: resp.Email, Role: resp.Role, Token: resp.Token}, nil
}

func (c *Client) Register(ctx context.Context, email, password, role string) (*models.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", credentials{Email: email, Password: password, Role: role}, &resp, "Registration failed")
	if err != nil {
		return nil, err
	}
	return &models.Session{Email: resp.Email, Role: resp.Role, Token: resp.Token}, nil
}

func (c *Client) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &product, "Failed to fetch product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products", product, &created, "Failed to create product"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Update(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id, product, &updated, "Failed to update product"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, "Failed to delete product")
}

// do performs one request. A non-2xx status becomes an HTTP-kind error whose
// message is the server-supplied body.message when present, otherwise
// fallback. out may be nil when the response body does not matter.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierr.Network(err, fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fallback
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			message = errBody.Message
		}
		return apierr.HTTP(resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
