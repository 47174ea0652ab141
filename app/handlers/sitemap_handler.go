package handlers

import (
	"encoding/xml"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-storefront/app/repositories"
)

type SitemapHandler struct {
	productRepo repositories.ProductRepositoryImpl
	appURL      string
}

func NewSitemapHandler(productRepo repositories.ProductRepositoryImpl, appURL string) *SitemapHandler {
	return &SitemapHandler{productRepo: productRepo, appURL: appURL}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap serves the XML sitemap: the static routes plus one entry per
// product, stamped with the product's last update.
func (h *SitemapHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.appURL + "/"},
			{Loc: h.appURL + "/products"},
			{Loc: h.appURL + "/carts"},
			{Loc: h.appURL + "/checkout"},
		},
	}

	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("SitemapHandler.Sitemap: failed to load products: %v", err)
	} else {
		for _, product := range products {
			urlSet.URLs = append(urlSet.URLs, sitemapURL{
				Loc:     h.appURL + "/products/" + product.Slug,
				LastMod: product.UpdatedAt.Format(time.RFC3339),
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(urlSet); err != nil {
		log.Printf("SitemapHandler.Sitemap: failed to encode sitemap: %v", err)
	}
}
