package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/go-storefront/app/models"
)

func TestSitemapListsStaticAndProductRoutes(t *testing.T) {
	catalog := &stubCatalog{products: []models.Product{
		{ID: "p1", Name: "Air Max", Slug: "air-max", UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	}}
	handler := NewSitemapHandler(catalog, "http://localhost:8080")

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	rec := httptest.NewRecorder()
	handler.Sitemap(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/xml") {
		t.Errorf("unexpected content type %s", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		"<loc>http://localhost:8080/products</loc>",
		"<loc>http://localhost:8080/products/air-max</loc>",
		"<lastmod>2026-08-01T12:00:00Z</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s\nbody: %s", want, body)
		}
	}
}
