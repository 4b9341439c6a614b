package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/backend/repository"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

func setupBackend(t *testing.T) *httptest.Server {
	t.Helper()

	repo, err := repository.NewRepository(":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations())
	t.Cleanup(func() { repo.Close() })

	srv := httptest.NewServer(NewRouter(repo, nil, 5*time.Second))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

const productJSON = `{
	"name": "Air Monarch Premium",
	"description": "Luxury leather sneaker with gold accents.",
	"price": 299.99,
	"colors": ["Black", "Gold", "Deep Red"],
	"images": ["https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800"],
	"category": "Premium Sneakers",
	"featured": true,
	"stock": 50
}`

func createProduct(t *testing.T, srv *httptest.Server) domain.Product {
	t.Helper()

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/products", productJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p domain.Product
	require.NoError(t, json.Unmarshal(body, &p))
	require.NotEmpty(t, p.ID)
	return p
}

func TestProductsAPI_CRUD(t *testing.T) {
	srv := setupBackend(t)
	p := createProduct(t, srv)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/products/"+p.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Product
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Air Monarch Premium", got.Name)

	// partial update: only the price changes
	resp, body = doRequest(t, http.MethodPut, srv.URL+"/api/products/"+p.ID, `{"price": 349.99}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 349.99, got.Price)
	assert.Equal(t, "Air Monarch Premium", got.Name)

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/products/"+p.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/products/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductsAPI_ColorFilter(t *testing.T) {
	srv := setupBackend(t)
	createProduct(t, srv)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/products?color=Gold", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 1)

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/products?color=Purple", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &products))
	assert.Empty(t, products)
}

func TestProductsAPI_RejectsInvalidProduct(t *testing.T) {
	srv := setupBackend(t)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/products", `{"name": "", "price": 10}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func orderJSON(productID string) string {
	return `{
		"items": [
			{"product_id": "` + productID + `", "product_name": "Air Monarch Premium", "quantity": 2, "price": 199.99, "color": "Black"}
		],
		"total": 399.98,
		"customer_info": {
			"name": "John Doe",
			"email": "john@example.com",
			"phone": "+1234567890",
			"address": "123 Luxury Ave",
			"city": "New York",
			"postal_code": "10001"
		},
		"payment_method": "COD"
	}`
}

func TestOrdersAPI_Lifecycle(t *testing.T) {
	srv := setupBackend(t)
	p := createProduct(t, srv)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/orders", orderJSON(p.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order domain.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "COD", order.PaymentMethod)

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/orders/"+order.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, 399.98, order.Total)

	resp, body = doRequest(t, http.MethodPatch, srv.URL+"/api/orders/"+order.ID+"/status", `{"status": "confirmed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
}

func TestOrdersAPI_EmailFilter(t *testing.T) {
	srv := setupBackend(t)
	p := createProduct(t, srv)

	doRequest(t, http.MethodPost, srv.URL+"/api/orders", orderJSON(p.ID))

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/orders?email=john@example.com", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	require.Len(t, orders, 1)

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/orders?email=nobody@example.com", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &orders))
	assert.Empty(t, orders)
}

func TestOrdersAPI_RejectsEmptyOrder(t *testing.T) {
	srv := setupBackend(t)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/orders",
		`{"items": [], "total": 0, "customer_info": {"name": "J", "email": "j@example.com"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrdersAPI_InvalidStatus(t *testing.T) {
	srv := setupBackend(t)
	p := createProduct(t, srv)

	_, body := doRequest(t, http.MethodPost, srv.URL+"/api/orders", orderJSON(p.ID))
	var order domain.Order
	require.NoError(t, json.Unmarshal(body, &order))

	resp, _ := doRequest(t, http.MethodPatch, srv.URL+"/api/orders/"+order.ID+"/status", `{"status": "teleported"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
