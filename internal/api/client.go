// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/domain/cart"
	"github.com/your-org/agrimart-client/internal/domain/catalog"
)

// TokenSource supplies the backend auth token for outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the thin HTTP wrapper over the remote backend. Every call
// returns the backend's uniform {success, data, error} envelope
// translated into Go values; callers never see transport-level status
// codes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logrus.Logger
}

// NewClient creates a backend API client
func NewClient(cfg *config.Config, tokens TokenSource, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Backend.RequestTimeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// envelope is the uniform response shape of every backend endpoint
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// cartPayload accepts both shapes the backend uses for cart data: a
// bare item array or an object wrapping one.
type cartPayload struct {
	Items []cart.Item `json:"items"`
}

// GetCart fetches the remote cart for a user
func (c *Client) GetCart(ctx context.Context, userID string) ([]cart.Item, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/cart/"+url.PathEscape(userID), nil, &raw); err != nil {
		return nil, err
	}

	var items []cart.Item
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var wrapped cartPayload
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected cart payload: %w", err)
	}
	return wrapped.Items, nil
}

// smartOperationRequest is the upsert-style cart call: it adds or
// updates a line depending on is_new.
type smartOperationRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	IsNew     bool   `json:"is_new"`
}

// SmartOperation upserts one remote cart line
func (c *Client) SmartOperation(ctx context.Context, productID string, quantity int, isNew bool) error {
	req := smartOperationRequest{
		ProductID: productID,
		Quantity:  quantity,
		IsNew:     isNew,
	}
	return c.do(ctx, http.MethodPost, "/cart/smart", req, nil)
}

// DeleteItem removes one remote cart line
func (c *Client) DeleteItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(productID), nil, nil)
}

type updateOrderStatusRequest struct {
	StatusID int    `json:"status_id"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateOrderStatus updates the authoritative order record's status
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, statusID int, notes string) error {
	req := updateOrderStatusRequest{
		StatusID: statusID,
		Notes:    notes,
	}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", req, nil)
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Translate machine-translates text between languages
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	req := translateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	}

	var resp translateResponse
	if err := c.do(ctx, http.MethodPost, "/translate", req, &resp); err != nil {
		return "", err
	}
	return resp.TranslatedText, nil
}

// GetProducts lists catalog products, optionally filtered by category
func (c *Client) GetProducts(ctx context.Context, category string) ([]catalog.Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetCategories lists catalog category names
func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// do issues one request and unpacks the envelope into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.WithError(err).Warn("Failed to read auth token, sending request unauthenticated")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("backend returned status %d with unreadable body", resp.StatusCode)
	}

	if !env.Success {
		if env.Error == "" {
			env.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("backend error: %s", env.Error)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
