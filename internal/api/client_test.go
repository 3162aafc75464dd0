// internal/api/client_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/agrimart-client/internal/config"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

func newTestClient(baseURL string, tokens TokenSource) *Client {
	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:        baseURL,
			RequestTimeout: time.Second,
		},
	}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(cfg, tokens, log)
}

func TestGetCartBareArrayShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/u1", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[{"id":"p1","quantity":2}]}`))
	}))
	defer ts.Close()

	items, err := newTestClient(ts.URL, nil).GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestGetCartWrappedShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"items":[{"id":"p1","quantity":2}]}}`))
	}))
	defer ts.Close()

	items, err := newTestClient(ts.URL, nil).GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestErrorEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Quantity cannot be negative"}`))
	}))
	defer ts.Close()

	err := newTestClient(ts.URL, nil).SmartOperation(context.Background(), "p1", -1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity cannot be negative")
}

func TestSmartOperationRequestShape(t *testing.T) {
	var body map[string]interface{}
	var authHeader string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/smart", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, &staticTokens{token: "tok-123"})
	require.NoError(t, client.SmartOperation(context.Background(), "p1", 3, true))

	assert.Equal(t, "Bearer tok-123", authHeader)
	assert.Equal(t, "p1", body["product_id"])
	assert.Equal(t, float64(3), body["quantity"])
	assert.Equal(t, true, body["is_new"])
}

func TestUpdateOrderStatus(t *testing.T) {
	var body map[string]interface{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/ord-1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, nil)
	require.NoError(t, client.UpdateOrderStatus(context.Background(), "ord-1", 3, "on the truck"))

	assert.Equal(t, float64(3), body["status_id"])
	assert.Equal(t, "on the truck", body["notes"])
}

func TestTranslate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"translated_text":"ಒಟ್ಟು"}}`))
	}))
	defer ts.Close()

	text, err := newTestClient(ts.URL, nil).Translate(context.Background(), "Total", "en", "kn")
	require.NoError(t, err)
	assert.Equal(t, "ಒಟ್ಟು", text)
}

func TestGetCategories(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":["Seeds","Groceries"]}`))
	}))
	defer ts.Close()

	categories, err := newTestClient(ts.URL, nil).GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Seeds", "Groceries"}, categories)
}

func TestTransportFailure(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", nil)

	_, err := client.GetCart(context.Background(), "u1")
	assert.Error(t, err)
}
