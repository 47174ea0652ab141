package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/renderer"
)

// stubCatalog overrides the one method the random endpoint needs; the
// embedded interface keeps the rest unimplemented.
type stubCatalog struct {
	repositories.ProductRepositoryImpl
	products []models.Product
}

func (s *stubCatalog) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func catalogOf(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("product-%d", i)}
	}
	return products
}

func TestRandomProductsCapsAtFour(t *testing.T) {
	handler := NewProductHandler(&stubCatalog{products: catalogOf(10)}, nil, renderer.New())

	req := httptest.NewRequest(http.MethodGet, "/products/random", nil)
	rec := httptest.NewRecorder()
	handler.RandomProducts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(body.Products) != 4 {
		t.Errorf("expected 4 picks, got %d", len(body.Products))
	}
}

func TestRandomProductsExcludesGivenIDs(t *testing.T) {
	handler := NewProductHandler(&stubCatalog{products: catalogOf(5)}, nil, renderer.New())

	req := httptest.NewRequest(http.MethodGet, "/products/random?exclude=p0,p1", nil)
	rec := httptest.NewRecorder()
	handler.RandomProducts(rec, req)

	var body struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(body.Products) != 3 {
		t.Fatalf("expected the 3 non-excluded products, got %d", len(body.Products))
	}
	for _, p := range body.Products {
		if p.ID == "p0" || p.ID == "p1" {
			t.Errorf("excluded product %s came back", p.ID)
		}
	}
}

func TestRandomProductsWithSmallCatalog(t *testing.T) {
	handler := NewProductHandler(&stubCatalog{products: catalogOf(2)}, nil, renderer.New())

	req := httptest.NewRequest(http.MethodGet, "/products/random", nil)
	rec := httptest.NewRecorder()
	handler.RandomProducts(rec, req)

	var body struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(body.Products) != 2 {
		t.Errorf("expected the whole catalog back, got %d", len(body.Products))
	}
}
