package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

func setupCatalog(t *testing.T, products []domain.Product) (*Client, *httptest.Server) {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		var out []domain.Product
		for _, p := range products {
			if req.URL.Query().Get("featured") == "true" && !p.Featured {
				continue
			}
			if c := req.URL.Query().Get("color"); c != "" && !p.HasColor(c) {
				continue
			}
			out = append(out, p)
		}
		if out == nil {
			out = []domain.Product{}
		}
		json.NewEncoder(w).Encode(out)
	})
	r.Get("/api/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		for _, p := range products {
			if p.ID == chi.URLParam(req, "id") {
				json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "product not found"})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second), srv
}

var catalogFixture = []domain.Product{
	{ID: "p1", Name: "Midnight Gold Edition", Price: 399.99, Colors: []string{"Black", "Gold"}, Featured: true},
	{ID: "p2", Name: "Crimson Royale", Price: 449.99, Colors: []string{"Deep Red", "Black"}, Featured: true},
	{ID: "p3", Name: "Shadow Elite", Price: 359.99, Colors: []string{"Black", "Gold", "Gray"}},
}

func TestList_All(t *testing.T) {
	c, _ := setupCatalog(t, catalogFixture)

	got, err := c.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestList_Featured(t *testing.T) {
	c, _ := setupCatalog(t, catalogFixture)

	got, err := c.List(context.Background(), ListOptions{Featured: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.True(t, p.Featured)
	}
}

func TestList_ColorFilter(t *testing.T) {
	c, _ := setupCatalog(t, catalogFixture)

	got, err := c.List(context.Background(), ListOptions{Color: "Deep Red"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Crimson Royale", got[0].Name)
}

func TestGet_Success(t *testing.T) {
	c, _ := setupCatalog(t, catalogFixture)

	got, err := c.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Crimson Royale", got.Name)
	assert.Equal(t, 449.99, got.Price)
}

func TestGet_NotFound(t *testing.T) {
	c, _ := setupCatalog(t, catalogFixture)

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	_, err := c.List(context.Background(), ListOptions{})
	require.ErrorContains(t, err, "status 500")
}
